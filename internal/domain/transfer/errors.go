package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrTransferFailure = errors.New("transfer failed")
)

// FailureError wraps the destination error of a folder or upload request.
type FailureError struct {
	Path string
	Err  error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("transfer %s: %v", e.Path, e.Err)
}

func (e *FailureError) Unwrap() error { return e.Err }

// Is makes every failure match ErrTransferFailure.
func (e *FailureError) Is(target error) bool {
	return target == ErrTransferFailure
}
