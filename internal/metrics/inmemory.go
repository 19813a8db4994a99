package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated          uint64
	UsersFetched          uint64
	UsersNotFound         uint64
	UserListsServed       uint64
	HealthChecksHealthy   uint64
	HealthChecksUnhealthy uint64
}

// InMemoryRecorder stores counters in memory.
type InMemoryRecorder struct {
	usersCreated          uint64
	usersFetched          uint64
	usersNotFound         uint64
	userListsServed       uint64
	healthChecksHealthy   uint64
	healthChecksUnhealthy uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:          atomic.LoadUint64(&m.usersCreated),
		UsersFetched:          atomic.LoadUint64(&m.usersFetched),
		UsersNotFound:         atomic.LoadUint64(&m.usersNotFound),
		UserListsServed:       atomic.LoadUint64(&m.userListsServed),
		HealthChecksHealthy:   atomic.LoadUint64(&m.healthChecksHealthy),
		HealthChecksUnhealthy: atomic.LoadUint64(&m.healthChecksUnhealthy),
	}
}

// IncUserCreated increments the created-user counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserFetched increments the fetched-user counter.
func (m *InMemoryRecorder) IncUserFetched() {
	atomic.AddUint64(&m.usersFetched, 1)
}

// IncUserNotFound increments the user-not-found counter.
func (m *InMemoryRecorder) IncUserNotFound() {
	atomic.AddUint64(&m.usersNotFound, 1)
}

// IncUsersListed increments the list-request counter.
func (m *InMemoryRecorder) IncUsersListed() {
	atomic.AddUint64(&m.userListsServed, 1)
}

// IncHealthCheck increments the health probe counter for the given status.
func (m *InMemoryRecorder) IncHealthCheck(status string) {
	if status == "healthy" {
		atomic.AddUint64(&m.healthChecksHealthy, 1)
		return
	}
	atomic.AddUint64(&m.healthChecksUnhealthy, 1)
}
