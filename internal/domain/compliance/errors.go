package compliance

import "errors"

var (
	ErrRuleNotFound     = errors.New("compliance rule not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoChecks         = errors.New("no compliance checks recorded")
	ErrDuplicateCode    = errors.New("a rule with this code already exists")
)
