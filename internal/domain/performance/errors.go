package performance

import "errors"

var (
	ErrCycleNotFound    = errors.New("review cycle not found")
	ErrCycleClosed      = errors.New("review cycle is closed")
	ErrReviewNotFound   = errors.New("performance review not found")
	ErrDuplicateReview  = errors.New("employee already has a review in this cycle")
	ErrReviewSubmitted  = errors.New("review has already been submitted")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrEmployeeNotFound = errors.New("employee not found")
)
