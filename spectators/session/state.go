package session

// State is the lifecycle position of a viewer session.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateJoined
	StateNegotiating
	StateConnected
	StateFailed
	StateLeft
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StateValidating:  "validating",
	StateJoined:      "joined",
	StateNegotiating: "negotiating",
	StateConnected:   "connected",
	StateFailed:      "failed",
	StateLeft:        "left",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// canJoin reports whether a join may start from s.
func (s State) canJoin() bool {
	return s == StateIdle || s == StateLeft
}

// onChannel reports whether s holds an open room channel.
func (s State) onChannel() bool {
	switch s {
	case StateJoined, StateNegotiating, StateConnected, StateFailed:
		return true
	}
	return false
}
