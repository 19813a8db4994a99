package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserFetched is a no-op.
func (n *NoopRecorder) IncUserFetched() {}

// IncUserNotFound is a no-op.
func (n *NoopRecorder) IncUserNotFound() {}

// IncUsersListed is a no-op.
func (n *NoopRecorder) IncUsersListed() {}

// IncHealthCheck is a no-op.
func (n *NoopRecorder) IncHealthCheck(status string) {}
