package agoralink

// SessionState represents the lifecycle state of a RoomSession.
type SessionState int

const (
	// StateIdle means no room is entered.
	StateIdle SessionState = iota

	// StateEntering means the session is joining a room and installing
	// its subscriptions.
	StateEntering

	// StateActive means the room is entered and live events are applied.
	// The history fetch may still be outstanding; its completion only
	// affects store contents, never this state.
	StateActive

	// StateLeaving means teardown is in progress: subscriptions are
	// being removed and room state cleared.
	StateLeaving
)

// String returns the string representation of a SessionState.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEntering:
		return "entering"
	case StateActive:
		return "active"
	case StateLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}
