package guidance

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSTransport sends angle payloads to the actuator bridge over WebSocket.
// Each logical channel maps to its own connection at <url>/channel/<name>,
// mirroring the dedicated-characteristic layout of the BLE hop it replaces.
type WSTransport struct {
	baseURL string

	mu     sync.Mutex
	conns  map[string]*websocket.Conn
	closed bool
}

// NewWSTransport creates a transport targeting ws://host:port.
// Connections are dialed lazily on first send per channel.
func NewWSTransport(baseURL string) *WSTransport {
	return &WSTransport{
		baseURL: baseURL,
		conns:   make(map[string]*websocket.Conn),
	}
}

func (t *WSTransport) conn(channel string) (*websocket.Conn, error) {
	if c, ok := t.conns[channel]; ok {
		return c, nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	url := fmt.Sprintf("%s/channel/%s", t.baseURL, channel)
	c, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", url, err)
	}
	t.conns[channel] = c
	return c, nil
}

// Send writes one payload to the channel's connection. A failed write drops
// the connection so the next send redials.
func (t *WSTransport) Send(channel string, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}

	c, err := t.conn(channel)
	if err != nil {
		return err
	}

	c.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.Close()
		delete(t.conns, channel)
		return fmt.Errorf("write to %s failed: %w", channel, err)
	}
	return nil
}

// Close closes all channel connections.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for channel, c := range t.conns {
		c.Close()
		delete(t.conns, channel)
	}
	return nil
}
