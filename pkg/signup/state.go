package signup

// State of a form submission.
type State int

const (
	Idle State = iota
	Submitting
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}
