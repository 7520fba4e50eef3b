//go:build integration

package repository_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wordledger/wordledger/internal/repository"
	"github.com/wordledger/wordledger/internal/testutil"
)

func TestIntegrationWords_CreateListDelete(t *testing.T) {
	ctx, repo := testutil.NewWordsRepository(t)

	first, err := repo.CreateWord(ctx, "Docker")
	if err != nil {
		t.Fatalf("CreateWord() error = %v", err)
	}
	if first.ID == 0 || first.Text != "Docker" {
		t.Fatalf("CreateWord() = %+v", first)
	}
	if first.Timestamp.IsZero() || first.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v, want a UTC time", first.Timestamp)
	}

	second, err := repo.CreateWord(ctx, "Kubernetes")
	if err != nil {
		t.Fatalf("CreateWord() error = %v", err)
	}

	words, err := repo.ListWords(ctx)
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("ListWords() len = %d, want 2", len(words))
	}
	if words[0].ID != second.ID || words[1].ID != first.ID {
		t.Errorf("ListWords() order = [%d %d], want newest first [%d %d]", words[0].ID, words[1].ID, second.ID, first.ID)
	}

	if err := repo.DeleteWord(ctx, first.ID); err != nil {
		t.Fatalf("DeleteWord() error = %v", err)
	}
	if err := repo.DeleteWord(ctx, first.ID); !errors.Is(err, repository.ErrWordNotFound) {
		t.Errorf("second DeleteWord() error = %v, want ErrWordNotFound", err)
	}

	words, err = repo.ListWords(ctx)
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(words) != 1 || words[0].Text != "Kubernetes" {
		t.Errorf("ListWords() after delete = %+v", words)
	}
}

func TestIntegrationWords_Duplicate(t *testing.T) {
	ctx, repo := testutil.NewWordsRepository(t)

	if _, err := repo.CreateWord(ctx, "Docker"); err != nil {
		t.Fatalf("CreateWord() error = %v", err)
	}
	if _, err := repo.CreateWord(ctx, "Docker"); !errors.Is(err, repository.ErrWordExists) {
		t.Errorf("duplicate CreateWord() error = %v, want ErrWordExists", err)
	}
}

func TestIntegrationWords_TooLong(t *testing.T) {
	ctx, repo := testutil.NewWordsRepository(t)

	if _, err := repo.CreateWord(ctx, strings.Repeat("a", 121)); !errors.Is(err, repository.ErrWordTooLong) {
		t.Errorf("CreateWord() error = %v, want ErrWordTooLong", err)
	}
}

func TestIntegrationWords_EmptyList(t *testing.T) {
	ctx, repo := testutil.NewWordsRepository(t)

	words, err := repo.ListWords(ctx)
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(words) != 0 {
		t.Errorf("ListWords() = %+v, want empty", words)
	}
}

func TestIntegrationWords_EnsureSchemaIdempotent(t *testing.T) {
	ctx, repo := testutil.NewWordsRepository(t)

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}
}
