package controller

import "fmt"

// State is the lifecycle stage of a submission attempt.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	// StateFailed is reserved for a real submission backend; the simulated
	// flow never reaches it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name, so states read well in JSON and logs.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
