// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User directory metrics
	IncUserCreated()
	IncUserFetched()
	IncUserNotFound()
	IncUsersListed()

	// Health probe metrics
	IncHealthCheck(status string) // status: "healthy" or "unhealthy"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
