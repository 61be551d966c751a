package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
)

// Message is one recorded Publish call.
type Message struct {
	Topic string
	Key   string
	Event any
}

// Publisher keeps published events in memory. It backs runs without a broker
// and tests.
type Publisher struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

func NewPublisher() *Publisher {
	return &Publisher{messages: make([]Message, 0)}
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, Message{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return nil
}

// Messages returns a copy of everything published so far.
func (p *Publisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := make([]Message, len(p.messages))
	copy(copied, p.messages)
	return copied
}

func (p *Publisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
