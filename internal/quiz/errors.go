package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientPool = errors.New("question pool too small")
	ErrNotStarted       = errors.New("quiz not started")
	ErrFinished         = errors.New("quiz already finished")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrFeedbackPending  = errors.New("current question has not been answered")
	ErrInvalidBank      = errors.New("invalid question bank")
)

// PoolError reports a pool that cannot fill a session.
type PoolError struct {
	Have int
	Need int
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("question pool has %d questions, need at least %d", e.Have, e.Need)
}

func (e *PoolError) Unwrap() error {
	return ErrInsufficientPool
}
