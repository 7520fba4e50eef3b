package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued() {}

// IncWordCreated is a no-op.
func (n *NoopRecorder) IncWordCreated() {}

// IncWordRejected is a no-op.
func (n *NoopRecorder) IncWordRejected() {}

// IncWordDeleted is a no-op.
func (n *NoopRecorder) IncWordDeleted() {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited() {}
