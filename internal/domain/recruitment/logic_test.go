package recruitment

import "testing"

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StageApplied, StageScreening, true},
		{StageScreening, StageInterview, true},
		{StageInterview, StageOffer, true},
		{StageOffer, StageHired, true},
		{StageApplied, StageInterview, false},
		{StageScreening, StageOffer, false},
		{StageApplied, StageHired, false},
		{StageInterview, StageHired, false},
		{StageScreening, StageApplied, false},
		{StageApplied, StageRejected, true},
		{StageOffer, StageRejected, true},
		{StageHired, StageRejected, false},
		{StageRejected, StageApplied, false},
		{StageRejected, StageScreening, false},
		{StageHired, StageOffer, false},
		{"UNKNOWN", StageScreening, false},
		{StageApplied, "UNKNOWN", false},
	}

	for _, c := range cases {
		if got := CanAdvance(c.from, c.to); got != c.want {
			t.Errorf("CanAdvance(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminalStage(t *testing.T) {
	for _, stage := range []string{StageApplied, StageScreening, StageInterview, StageOffer} {
		if IsTerminalStage(stage) {
			t.Errorf("%s should not be terminal", stage)
		}
	}
	if !IsTerminalStage(StageHired) || !IsTerminalStage(StageRejected) {
		t.Error("HIRED and REJECTED are terminal")
	}
}
