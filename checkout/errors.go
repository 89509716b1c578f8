package checkout

import "fmt"

// ValidationError blocks an action before any backend call is made.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
	}
}

// TransitionError rejects an action whose state precondition is not met.
// It is a pure local rejection; the current state is left untouched.
type TransitionError struct {
	Code    string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewTransitionError(msg string) error {
	return &TransitionError{
		Code:    "transitionError",
		Message: msg,
	}
}
