package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrUnavailable marks failures of the remote board or its storage.
var ErrUnavailable = errors.New("leaderboard unavailable")

// Service is a leaderboard. Every operation returns the resulting
// normalized board.
type Service interface {
	Entries(ctx context.Context) ([]Entry, error)
	Record(ctx context.Context, name string, score int) ([]Entry, error)
	Rename(ctx context.Context, oldName, newName string) ([]Entry, error)
}

// StatusError is returned by Client for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leaderboard: remote returned status %d", e.Code)
	}
	return fmt.Sprintf("leaderboard: remote returned status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrUnavailable }

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
