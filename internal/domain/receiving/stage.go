package receiving

// Stage represents one phase of the receiving workflow.
// Transitions are strictly forward; there is no rollback transition.
type Stage string

const (
	StageArrivalPending Stage = "ARRIVAL_PENDING"
	StageUnloading      Stage = "UNLOADING"
	StageQualityCheck   Stage = "QUALITY_CHECK"
	StagePutaway        Stage = "PUTAWAY"
	StageComplete       Stage = "COMPLETE"
)

// IsValid checks if the stage is a valid Stage
func (s Stage) IsValid() bool {
	switch s {
	case StageArrivalPending, StageUnloading, StageQualityCheck, StagePutaway, StageComplete:
		return true
	}
	return false
}

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// CanTransitionTo checks if the stage can transition to the target stage
func (s Stage) CanTransitionTo(target Stage) bool {
	switch s {
	case StageArrivalPending:
		return target == StageUnloading
	case StageUnloading:
		return target == StageQualityCheck
	case StageQualityCheck:
		return target == StagePutaway
	case StagePutaway:
		return target == StageComplete
	case StageComplete:
		return false // Terminal
	}
	return false
}

// IsTerminal returns true for the terminal stage
func (s Stage) IsTerminal() bool {
	return s == StageComplete
}
