// Package gate implements the session-local vault lock controlling
// access to protected assets on the public page. Gate state is never
// persisted; every page session starts Locked.
package gate

// State is the current position of the vault gate.
type State int

const (
	// Locked is the initial state; the vault section is not rendered.
	Locked State = iota
	// Unlocking is the transient state while a submitted PIN is checked.
	Unlocking
	// Unlocked renders the vault section until an explicit re-lock.
	Unlocked
)

func (s State) String() string {
	switch s {
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// Gate is a single viewer's lock state machine. It is not safe for
// concurrent use; each page session owns its own Gate.
type Gate struct {
	state State
}

// New returns a gate in the initial Locked state.
func New() *Gate {
	return &Gate{state: Locked}
}

// State reports the current gate state.
func (g *Gate) State() State {
	return g.state
}

// Submit runs one Locked → Unlocking → Unlocked (or back to Locked)
// transition for a user-submitted PIN. storedPin is the profile's pin;
// an empty stored value falls back to the default "1234". The submitted
// value must match the stored one exactly. There is no retry limit and
// no lockout; a mismatch simply returns the gate to Locked.
func (g *Gate) Submit(pin, storedPin string) bool {
	if storedPin == "" {
		storedPin = "1234"
	}
	g.state = Unlocking
	if pin == storedPin {
		g.state = Unlocked
		return true
	}
	g.state = Locked
	return false
}

// Relock returns an unlocked gate to Locked.
func (g *Gate) Relock() {
	g.state = Locked
}
