package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/repository"
)

type output struct {
	Created []model.WordEntry `json:"created"`
	Skipped []string          `json:"skipped"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		wordsInput  = flag.String("words", "", "Comma-separated words (in addition to positional arguments)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	words := parseWords(*wordsInput, flag.Args())
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "usage: seed-words [-words a,b] word...")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "apply schema:", err)
		os.Exit(1)
	}

	var out output
	for _, text := range words {
		word, err := repo.CreateWord(ctx, text)
		switch {
		case errors.Is(err, repository.ErrWordExists), errors.Is(err, repository.ErrWordTooLong):
			out.Skipped = append(out.Skipped, text)
		case err != nil:
			fmt.Fprintln(os.Stderr, "create word:", err)
			os.Exit(1)
		default:
			out.Created = append(out.Created, word.Entry())
		}
	}

	switch strings.ToLower(*format) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
	default:
		for _, w := range out.Created {
			fmt.Printf("created %d %q at %s\n", w.ID, w.Text, w.Timestamp)
		}
		for _, text := range out.Skipped {
			fmt.Printf("skipped %q\n", text)
		}
	}
}

// parseWords merges the comma list and positional arguments, dropping
// blanks and repeats.
func parseWords(list string, args []string) []string {
	seen := make(map[string]struct{})
	var words []string

	add := func(raw string) {
		w := strings.TrimSpace(raw)
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	if list != "" {
		for _, part := range strings.Split(list, ",") {
			add(part)
		}
	}
	for _, arg := range args {
		add(arg)
	}
	return words
}
