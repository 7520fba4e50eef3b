// Package ledger keeps the client's cached copy of the word collection and
// performs the list, create and delete operations against the API.
//
// The cached sequence is only ever replaced wholesale by a successful list
// fetch. Mutations never patch it; they trigger a refresh instead.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/wordledger/wordledger/internal/apiclient"
	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/session"
)

// DeletePrompt is the question asked before a word is deleted.
const DeletePrompt = "Are you sure you want to delete this word?"

// ErrDeclined is returned when the user does not confirm a delete.
var ErrDeclined = errors.New("delete not confirmed")

// Client is the subset of the API client the ledger needs.
type Client interface {
	ListWords(ctx context.Context, token string) ([]model.WordEntry, error)
	CreateWord(ctx context.Context, token, text string) (*apiclient.CreateWordResponse, error)
	DeleteWord(ctx context.Context, token string, id int64) error
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Fixed answers, for callers that collected the answer up front.
var (
	Accept  Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	Decline Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

// Result describes a successful mutation.
type Result struct {
	// Word is the saved text as echoed by the API (create only).
	Word string
	// RefreshErr is set when the follow-up list refresh failed. The
	// mutation itself still succeeded.
	RefreshErr error
}

// Manager owns the cached word sequence.
type Manager struct {
	client Client
	logger *slog.Logger

	mu      sync.RWMutex
	entries []model.WordEntry
}

// NewManager creates a Manager with an empty cache.
func NewManager(client Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		client:  client,
		logger:  logger,
		entries: []model.WordEntry{},
	}
}

// Entries returns a copy of the cached sequence in server order.
func (m *Manager) Entries() []model.WordEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

// Len returns the number of cached entries.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Refresh fetches the full collection and replaces the cache with it.
// Without a session it does nothing. On failure the cache is unchanged.
// A result that arrives after ctx is done is discarded.
func (m *Manager) Refresh(ctx context.Context, sess session.Session) error {
	token, ok := sess.Token()
	if !ok {
		return nil
	}

	entries, err := m.client.ListWords(ctx, token)
	if err != nil {
		m.logger.Error("error fetching word list", slog.String("error", err.Error()))
		return err
	}
	if err := ctx.Err(); err != nil {
		m.logger.Debug("discarding stale word list", slog.Int("count", len(entries)))
		return err
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()

	m.logger.Debug("word list refreshed", slog.Int("count", len(entries)))
	return nil
}

// Create saves text and, on success, refreshes the cache.
// Without a session it fails with session.ErrNotAuthenticated and makes no
// request.
func (m *Manager) Create(ctx context.Context, sess session.Session, text string) (Result, error) {
	token, ok := sess.Token()
	if !ok {
		return Result{}, session.ErrNotAuthenticated
	}

	resp, err := m.client.CreateWord(ctx, token, text)
	if err != nil {
		m.logger.Error("error saving word", slog.String("error", err.Error()))
		return Result{}, err
	}

	m.logger.Info("word saved", slog.String("word", resp.Word))

	return Result{
		Word:       resp.Word,
		RefreshErr: m.Refresh(ctx, sess),
	}, nil
}

// Delete asks confirm first; declining returns ErrDeclined with no request
// made. Only a 204 from the API counts as success, which triggers a
// refresh. The entry is never removed from the cache directly.
func (m *Manager) Delete(ctx context.Context, sess session.Session, id int64, confirm Confirmer) (Result, error) {
	if confirm == nil || !confirm.Confirm(ctx, DeletePrompt) {
		return Result{}, ErrDeclined
	}

	token, ok := sess.Token()
	if !ok {
		m.logger.Error("error deleting word", slog.String("error", session.ErrNotAuthenticated.Error()))
		return Result{}, session.ErrNotAuthenticated
	}

	if err := m.client.DeleteWord(ctx, token, id); err != nil {
		m.logger.Error("error deleting word",
			slog.Int64("word_id", id),
			slog.String("error", err.Error()),
		)
		return Result{}, err
	}

	m.logger.Info("word deleted", slog.Int64("word_id", id))

	return Result{RefreshErr: m.Refresh(ctx, sess)}, nil
}
