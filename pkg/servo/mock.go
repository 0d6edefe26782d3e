package servo

import "sync"

// MockDriver records pulse commands for tests and dry runs.
type MockDriver struct {
	mu     sync.Mutex
	Pulses []int
	Err    error // returned from every call when set
}

// SetPulseWidth implements Driver.
func (m *MockDriver) SetPulseWidth(us int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Pulses = append(m.Pulses, us)
	return nil
}

// Last returns the most recent pulse width, or 0 if none.
func (m *MockDriver) Last() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Pulses) == 0 {
		return 0
	}
	return m.Pulses[len(m.Pulses)-1]
}
