package guidance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeTransport records sends and optionally fails them.
type fakeTransport struct {
	mu       sync.Mutex
	channels []string
	payloads []string
	err      error
}

func (f *fakeTransport) Send(channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, string(payload))
	return nil
}

func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) sends() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.channels...), append([]string(nil), f.payloads...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestPublisher_DeliversInOrder(t *testing.T) {
	ft := &fakeTransport{}
	p := NewPublisher(ft)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.PublishAngle(ChannelAvoidance, 30)
	p.PublishAngle(ChannelBearing, -45)
	p.PublishAngle(ChannelAvoidance, 120) // clamped on the wire

	waitFor(t, func() bool { sent, _, _ := p.Stats(); return sent == 3 })

	channels, payloads := ft.sends()
	wantChannels := []string{ChannelAvoidance, ChannelBearing, ChannelAvoidance}
	wantPayloads := []string{"30", "-45", "90"}
	for i := range wantChannels {
		if channels[i] != wantChannels[i] || payloads[i] != wantPayloads[i] {
			t.Errorf("send %d = %s:%s, want %s:%s",
				i, channels[i], payloads[i], wantChannels[i], wantPayloads[i])
		}
	}
}

func TestPublisher_DropsWhenQueueFull(t *testing.T) {
	// No Run goroutine: the queue fills and further publishes must drop
	// without blocking the caller.
	p := NewPublisher(&fakeTransport{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			p.PublishAngle(ChannelAvoidance, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishAngle blocked on a full queue")
	}

	if _, dropped, _ := p.Stats(); dropped == 0 {
		t.Error("no drops counted despite an undrained queue")
	}
}

func TestPublisher_CountsTransportErrors(t *testing.T) {
	ft := &fakeTransport{err: errors.New("link down")}
	p := NewPublisher(ft)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.PublishAngle(ChannelAvoidance, 10)
	waitFor(t, func() bool { _, _, errs := p.Stats(); return errs == 1 })

	if sent, _, _ := p.Stats(); sent != 0 {
		t.Errorf("sent = %d after a failed transmission, want 0", sent)
	}
}
