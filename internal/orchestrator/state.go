package orchestrator

// State is a step of an analysis run.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateRequesting   State = "requesting"
	StateLocalSorting State = "local_sorting"
	StateClassifying  State = "classifying"
	StateRendered     State = "rendered"
	StateErrored      State = "errored"
)

var transitions = map[State][]State{
	StateIdle:         {StateValidating},
	StateValidating:   {StateRequesting, StateLocalSorting, StateErrored},
	StateRequesting:   {StateClassifying, StateErrored},
	StateLocalSorting: {StateClassifying, StateErrored},
	StateClassifying:  {StateRendered, StateErrored},
	StateRendered:     {StateIdle},
	StateErrored:      {StateIdle},
}

// CanTransition reports whether a run may move from one state to another.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state ends a run.
func IsTerminal(s State) bool {
	return s == StateRendered || s == StateErrored
}
