// Package service provides business logic for the words API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/wordledger/wordledger/internal/metrics"
	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/repository"
)

// Service errors.
var (
	ErrInvalidWord  = errors.New("word text is empty")
	ErrWordTooLong  = errors.New("word text too long")
	ErrWordExists   = errors.New("word already exists")
	ErrWordNotFound = errors.New("word not found")
)

// DefaultWordMaxLength matches the words.text column.
const DefaultWordMaxLength = 120

// WordStore persists words. *repository.Repository implements it.
type WordStore interface {
	CreateWord(ctx context.Context, text string) (*model.Word, error)
	ListWords(ctx context.Context) ([]model.Word, error)
	DeleteWord(ctx context.Context, id int64) error
}

// WordService handles word business logic.
type WordService struct {
	store     WordStore
	metrics   metrics.Recorder
	maxLength int
	now       func() time.Time
}

// NewWordService creates a new WordService. maxLength <= 0 uses
// DefaultWordMaxLength.
func NewWordService(store WordStore, recorder metrics.Recorder, maxLength int) *WordService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if maxLength <= 0 {
		maxLength = DefaultWordMaxLength
	}
	return &WordService{
		store:     store,
		metrics:   recorder,
		maxLength: maxLength,
		now:       time.Now,
	}
}

// CreateWord validates and stores text.
func (s *WordService) CreateWord(ctx context.Context, text string) (*model.Word, error) {
	if err := s.validateText(text); err != nil {
		s.metrics.IncWordRejected()
		return nil, err
	}

	word, err := s.store.CreateWord(ctx, text)
	if err != nil {
		s.metrics.IncWordRejected()
		switch {
		case errors.Is(err, repository.ErrWordExists):
			return nil, ErrWordExists
		case errors.Is(err, repository.ErrWordTooLong):
			return nil, ErrWordTooLong
		}
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	s.metrics.IncWordCreated()
	return word, nil
}

// ListWords returns every stored word, newest first.
func (s *WordService) ListWords(ctx context.Context) ([]model.Word, error) {
	words, err := s.store.ListWords(ctx)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []model.Word{}
	}
	return words, nil
}

// DeleteWord removes the word with id.
func (s *WordService) DeleteWord(ctx context.Context, id int64) error {
	if err := s.store.DeleteWord(ctx, id); err != nil {
		if errors.Is(err, repository.ErrWordNotFound) {
			return ErrWordNotFound
		}
		return err
	}

	s.metrics.IncWordDeleted()
	return nil
}

// ServerTime returns the current server-local time in model.TimestampLayout.
func (s *WordService) ServerTime() string {
	return s.now().Format(model.TimestampLayout)
}

func (s *WordService) validateText(text string) error {
	if text == "" {
		return ErrInvalidWord
	}
	if utf8.RuneCountInString(text) > s.maxLength {
		return ErrWordTooLong
	}
	return nil
}
