package performance

import "fmt"

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

func ValidProgress(progress int) bool {
	return progress >= 0 && progress <= 100
}

func buildCycleSummary(cycleID string, goalsTotal, goalsCompleted, reviewsTotal, reviewsSubmitted int, ratings []int) CycleSummary {
	summary := CycleSummary{
		CycleID:            cycleID,
		GoalsTotal:         goalsTotal,
		GoalsCompleted:     goalsCompleted,
		ReviewsTotal:       reviewsTotal,
		ReviewsSubmitted:   reviewsSubmitted,
		RatingDistribution: map[string]int{},
	}
	for _, rating := range ratings {
		summary.RatingDistribution[fmt.Sprintf("%d", rating)]++
	}
	if reviewsTotal > 0 {
		summary.ReviewCompletionRate = float64(reviewsSubmitted) / float64(reviewsTotal)
	}
	return summary
}
