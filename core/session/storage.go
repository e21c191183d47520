package session

import "context"

// Storage is a durable key-value backend for the persisted record.
// Load returns ErrNotFound for an absent key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Observer receives persistence outcomes, typically for metrics.
type Observer interface {
	ObservePersist(op string, err error)
	ObserveAuthenticated(authenticated bool)
}

type noopObserver struct{}

func (noopObserver) ObservePersist(string, error) {}
func (noopObserver) ObserveAuthenticated(bool) {}
