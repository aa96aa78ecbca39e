package realtime

// ReadyState tracks the lifecycle of the one shared connection.
type ReadyState int

const (
	StateUninstantiated ReadyState = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s ReadyState) String() string {
	switch s {
	case StateUninstantiated:
		return "Uninstantiated"
	case StateConnecting:
		return "Connecting"
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}
