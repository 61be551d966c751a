package interfaces

import "context"

// EventPublisher delivers engine events to downstream consumers.
// key groups events that must stay ordered, e.g. one client's events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}
