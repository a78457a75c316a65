package protocol

// State is the lifecycle phase of a Correlator's connection.
type State int32

const (
	// StateIdle means Attach has not been called.
	StateIdle State = iota

	// StateConnecting means the socket is being dialed. Requests are queued.
	StateConnecting

	// StateOpen means the socket is usable. Requests are written immediately.
	StateOpen

	// StateClosed means the socket failed, was closed by the peer, or was closed locally.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
