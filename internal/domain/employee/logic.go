package employee

// allowedTransitions captures the employment lifecycle. TERMINATED only
// re-enters via reactivation to ACTIVE.
var allowedTransitions = map[string][]string{
	StatusProbation:    {StatusActive, StatusNoticePeriod, StatusTerminated},
	StatusActive:       {StatusNoticePeriod, StatusOnLeave, StatusTerminated},
	StatusOnLeave:      {StatusActive, StatusTerminated},
	StatusNoticePeriod: {StatusTerminated, StatusActive},
	StatusTerminated:   {StatusActive},
}

func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
