package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/realtime"
)

type localBus struct {
	log *logger.Logger

	mu      sync.Mutex
	onEvent func(ev realtime.Event)
	closed  bool
}

func NewLocalBus(log *logger.Logger) Bus {
	return &localBus{
		log: log.With("service", "LocalBus"),
	}
}

func (b *localBus) Publish(ctx context.Context, ev realtime.Event) error {
	b.mu.Lock()
	onEvent := b.onEvent
	closed := b.closed
	b.mu.Unlock()

	if closed {
		return fmt.Errorf("local bus closed")
	}
	if onEvent == nil {
		// No forwarder yet; events before startup are dropped.
		return nil
	}
	onEvent(ev)
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("local bus closed")
	}
	b.onEvent = onEvent
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.onEvent = nil
	return nil
}
