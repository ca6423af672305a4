package generator

import (
	"errors"
	"fmt"
)

// ErrStepLocked is wrapped by a ValidationError when an action is triggered
// before the step that unlocks it has completed.
var ErrStepLocked = errors.New("step is not unlocked yet")

// GenerationError covers collaborator failures and unusable model output.
// The session is left exactly as it was.
type GenerationError struct {
	Step string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ValidationError blocks an action because a required input is missing or invalid.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IndexError is an out-of-range title selection.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("title index %d out of range [0,%d)", e.Index, e.Len)
}

func stepLocked(step string) error {
	return &ValidationError{Field: "step", Msg: step + " is not unlocked yet", Err: ErrStepLocked}
}
