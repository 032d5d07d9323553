package schema

// AgentState is a lifecycle label on an agent. It is set at run entry and
// exit for observability; transitions are not validated. Paused and Finished
// are declared for completeness but no code path drives them yet.
type AgentState string

const (
	StateIdle     AgentState = "idle"
	StateRunning  AgentState = "running"
	StatePaused   AgentState = "paused"
	StateFinished AgentState = "finished"
	StateError    AgentState = "error"
)

func (s AgentState) String() string {
	return string(s)
}
