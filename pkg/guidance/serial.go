package guidance

import (
	"fmt"
	"sync"

	"go.bug.st/serial"
)

// SerialTransport sends angle payloads over a UART link to a directly wired
// servo controller, for rigs without the wireless bridge. Both logical
// channels share the port, so each write is framed as "channel:value\n".
type SerialTransport struct {
	mu   sync.Mutex
	port serial.Port
}

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(device string, baud int) (*SerialTransport, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return &SerialTransport{port: port}, nil
}

// Send writes one channel-prefixed line.
func (t *SerialTransport) Send(channel string, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := make([]byte, 0, len(channel)+len(payload)+2)
	line = append(line, channel...)
	line = append(line, ':')
	line = append(line, payload...)
	line = append(line, '\n')

	if _, err := t.port.Write(line); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

// Close closes the port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}
