package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TokensIssued  uint64
	WordsCreated  uint64
	WordsRejected uint64
	WordsDeleted  uint64
	RateLimited   uint64
}

// InMemoryRecorder stores counters in memory. The API serves them on
// /metrics.
type InMemoryRecorder struct {
	tokensIssued  atomic.Uint64
	wordsCreated  atomic.Uint64
	wordsRejected atomic.Uint64
	wordsDeleted  atomic.Uint64
	rateLimited   atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		TokensIssued:  m.tokensIssued.Load(),
		WordsCreated:  m.wordsCreated.Load(),
		WordsRejected: m.wordsRejected.Load(),
		WordsDeleted:  m.wordsDeleted.Load(),
		RateLimited:   m.rateLimited.Load(),
	}
}

// IncTokenIssued increments the issued token counter.
func (m *InMemoryRecorder) IncTokenIssued() { m.tokensIssued.Add(1) }

// IncWordCreated increments the created word counter.
func (m *InMemoryRecorder) IncWordCreated() { m.wordsCreated.Add(1) }

// IncWordRejected increments the rejected word counter.
func (m *InMemoryRecorder) IncWordRejected() { m.wordsRejected.Add(1) }

// IncWordDeleted increments the deleted word counter.
func (m *InMemoryRecorder) IncWordDeleted() { m.wordsDeleted.Add(1) }

// IncRateLimited increments the rate limited request counter.
func (m *InMemoryRecorder) IncRateLimited() { m.rateLimited.Add(1) }
