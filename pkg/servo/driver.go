package servo

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialDriver forwards pulse-width commands over UART to the servo
// controller board, one "P <microseconds>\n" line per command.
type SerialDriver struct {
	port serial.Port
}

// OpenSerialDriver opens the controller's serial device.
func OpenSerialDriver(device string, baud int) (*SerialDriver, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open servo serial %s: %w", device, err)
	}
	return &SerialDriver{port: port}, nil
}

// SetPulseWidth implements Driver.
func (d *SerialDriver) SetPulseWidth(us int) error {
	if _, err := fmt.Fprintf(d.port, "P %d\n", us); err != nil {
		return fmt.Errorf("servo serial write: %w", err)
	}
	return nil
}

// Close closes the serial port.
func (d *SerialDriver) Close() error {
	return d.port.Close()
}
