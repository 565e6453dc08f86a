package recruitment

// stageOrder gives the pipeline position of each stage. Terminal stages are
// not in the map.
var stageOrder = map[string]int{
	StageApplied:   0,
	StageScreening: 1,
	StageInterview: 2,
	StageOffer:     3,
}

func IsValidStage(stage string) bool {
	switch stage {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

func IsTerminalStage(stage string) bool {
	return stage == StageHired || stage == StageRejected
}

// CanAdvance reports whether an application may move from one stage to the
// next. The pipeline moves one step at a time, REJECTED is reachable from any
// non-terminal stage, and terminal stages cannot be left.
func CanAdvance(from, to string) bool {
	if !IsValidStage(from) || !IsValidStage(to) || IsTerminalStage(from) {
		return false
	}
	if to == StageRejected {
		return true
	}
	if to == StageHired {
		return from == StageOffer
	}
	fromPos, ok := stageOrder[from]
	if !ok {
		return false
	}
	toPos, ok := stageOrder[to]
	if !ok {
		return false
	}
	return toPos == fromPos+1
}
