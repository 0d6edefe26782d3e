package guidance

import (
	"context"
	"sync/atomic"

	"github.com/clearway/go-clearway/internal/log"
)

// Transport carries encoded angle payloads to the remote actuator over some
// wireless or wired link. Implementations must tolerate concurrent Send
// calls for different channels.
type Transport interface {
	Send(channel string, payload []byte) error
	Close() error
}

// item is one queued write.
type item struct {
	channel string
	payload []byte
}

// Publisher decouples the sensor frame callback from the transport hop.
// Sends are fire-and-forget through a bounded queue; when the queue is full
// the write is dropped rather than blocking frame processing. The actuator
// only ever needs the freshest value, so dropped writes are harmless.
type Publisher struct {
	transport Transport
	queue     chan item

	sent    atomic.Int64
	dropped atomic.Int64
	errors  atomic.Int64
}

// NewPublisher creates a publisher over the given transport.
func NewPublisher(transport Transport) *Publisher {
	return &Publisher{
		transport: transport,
		queue:     make(chan item, 16),
	}
}

// Run drains the queue until ctx is cancelled. Blocking, use a goroutine.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case it := <-p.queue:
			if err := p.transport.Send(it.channel, it.payload); err != nil {
				p.errors.Add(1)
				log.Warn("guidance send failed", "channel", it.channel, "error", err)
				continue
			}
			p.sent.Add(1)
		}
	}
}

// PublishAngle queues an angle for transmission. Never blocks.
func (p *Publisher) PublishAngle(channel string, deg int) {
	select {
	case p.queue <- item{channel: channel, payload: EncodeAngle(deg)}:
	default:
		p.dropped.Add(1)
	}
}

// Stats reports publisher counters for the dashboard.
func (p *Publisher) Stats() (sent, dropped, errors int64) {
	return p.sent.Load(), p.dropped.Load(), p.errors.Load()
}
