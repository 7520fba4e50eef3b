// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the words API.
type Recorder interface {
	IncTokenIssued()

	IncWordCreated()
	IncWordRejected()
	IncWordDeleted()

	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
