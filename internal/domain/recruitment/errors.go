package recruitment

import "errors"

var (
	ErrPostingNotFound     = errors.New("job posting not found")
	ErrPostingClosed       = errors.New("job posting is closed")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrDuplicateEmail      = errors.New("a candidate with this email already exists")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDuplicateApplicant  = errors.New("candidate has already applied to this posting")
	ErrInvalidStage        = errors.New("unknown application stage")
	ErrStageTransition     = errors.New("stage transition not allowed")
	ErrNotInInterviewStage = errors.New("application is not in the interview stage")
	ErrInterviewNotFound   = errors.New("interview not found")
)
