package stats

// State is where a balancer sits in its roll/balance lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateUnbalanced
	StateBalanced
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateUnbalanced:
		return "Unbalanced"
	case StateBalanced:
		return "Balanced"
	default:
		return "Unknown"
	}
}
