package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/wpnew/internal/bus"
)

// State is the daemon's connection state as reported to clients.
type State string

const (
	Booting      State = "BOOTING"
	AuthRequired State = "AUTH_REQUIRED"
	Connecting   State = "CONNECTING"
	Ready        State = "READY"
	Reconnecting State = "RECONNECTING"
	Error        State = "ERROR"
)

var transitions = map[State][]State{
	Booting:      {AuthRequired, Connecting, Error},
	AuthRequired: {Connecting, Error},
	Connecting:   {Ready, AuthRequired, Reconnecting, Error},
	Ready:        {Reconnecting, AuthRequired, Error},
	Reconnecting: {Connecting, Ready, AuthRequired, Error},
	Error:        {Booting, Connecting},
}

var descriptions = map[State]string{
	Booting:      "starting up",
	AuthRequired: "scan the QR code to link this device",
	Connecting:   "connecting to WhatsApp",
	Ready:        "connected",
	Reconnecting: "connection lost, retrying",
	Error:        "connection failed",
}

// Describe returns a short human readable explanation of s.
func (s State) Describe() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return string(s)
}

// Change is the payload of a session.status_changed event.
type Change struct {
	From State
	To   State
}

// Machine tracks and enforces daemon state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a machine in Booting. b may be nil.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{current: Booting, bus: b}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves to the given state or returns an error if the move is not allowed.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	from := m.current
	if !slices.Contains(transitions[from], to) {
		m.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	m.current = to
	m.mu.Unlock()

	m.bus.Publish(bus.NewEvent(bus.KindStatusChanged, Change{From: from, To: to}))
	return nil
}

// Walk applies each transition in order, stopping at the first failure.
// Used where an event may arrive in any of several states, e.g. Connected
// after a QR pairing (AUTH_REQUIRED → CONNECTING → READY).
func (m *Machine) Walk(path ...State) error {
	for _, s := range path {
		if m.Current() == s {
			continue
		}
		if err := m.Transition(s); err != nil {
			return err
		}
	}
	return nil
}
