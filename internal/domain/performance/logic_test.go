package performance

import "testing"

func TestBuildCycleSummaryWithRatings(t *testing.T) {
	summary := buildCycleSummary("cycle-1", 10, 6, 8, 4, []int{3, 4, 4, 5})
	if summary.GoalsTotal != 10 || summary.GoalsCompleted != 6 {
		t.Fatalf("unexpected goals summary: %+v", summary)
	}
	if summary.ReviewsTotal != 8 || summary.ReviewsSubmitted != 4 {
		t.Fatalf("unexpected review summary: %+v", summary)
	}
	if summary.ReviewCompletionRate != 0.5 {
		t.Fatalf("expected completion rate 0.5, got %v", summary.ReviewCompletionRate)
	}
	if summary.RatingDistribution["3"] != 1 {
		t.Fatalf("expected one rating of 3, got %d", summary.RatingDistribution["3"])
	}
	if summary.RatingDistribution["4"] != 2 {
		t.Fatalf("expected two ratings of 4, got %d", summary.RatingDistribution["4"])
	}
	if summary.RatingDistribution["5"] != 1 {
		t.Fatalf("expected one rating of 5, got %d", summary.RatingDistribution["5"])
	}
}

func TestBuildCycleSummaryHandlesZeroReviews(t *testing.T) {
	summary := buildCycleSummary("cycle-1", 2, 1, 0, 0, nil)
	if summary.ReviewCompletionRate != 0 {
		t.Fatalf("expected zero completion rate, got %v", summary.ReviewCompletionRate)
	}
	if len(summary.RatingDistribution) != 0 {
		t.Fatalf("expected empty rating distribution, got %+v", summary.RatingDistribution)
	}
}

func TestValidRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		if !ValidRating(rating) {
			t.Errorf("rating %d should be valid", rating)
		}
	}
	for _, rating := range []int{0, 6, -1} {
		if ValidRating(rating) {
			t.Errorf("rating %d should be invalid", rating)
		}
	}
}
