package bus

import (
	"context"
	"fmt"

	"github.com/velore/contactbook/internal/platform/config"
	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/realtime"
)

// Bus carries contact change events from the service layer to whatever is
// forwarding them to clients. The local bus stays in-process; the redis bus
// lets several server instances share one stream.
type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error
	Close() error
}

func New(log *logger.Logger, cfg config.Realtime) (Bus, error) {
	switch cfg.Bus {
	case "local":
		return NewLocalBus(log), nil
	case "redis":
		return NewRedisBus(log, cfg)
	default:
		return nil, fmt.Errorf("unknown realtime bus %q", cfg.Bus)
	}
}
