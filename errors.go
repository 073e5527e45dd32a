package outreach

import "errors"

// Sentinel errors for compile operations.
var (
	ErrMalformedStepNumber = errors.New("step number is not a positive integer")
	ErrMalformedStepDelay  = errors.New("step delay is not a non-negative integer")
)
