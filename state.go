package memfacade

// State is the connection state of a Cache. It moves once, from
// StateUnconnected to one of the two terminal states.
type State int32

const (
	StateUnconnected State = iota
	StateConnected
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}
