package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
)

// Board composes the local board with an optional remote one.
//
// The local board is always updated first and is the source of the returned
// list when the remote fails. Mutations the remote did not accept are queued
// and replayed, in order, before the next remote call. Once the queue is
// empty a successful remote reply replaces the local cache, so both hold the
// same ranking.
type Board struct {
	local  *LocalBoard
	remote Service
	logger *log.Logger

	mu      sync.Mutex
	pending []pendingOp
}

type boardOp func(ctx context.Context) ([]Entry, error)

// pendingOp is a mutation applied locally but not yet on the remote.
type pendingOp struct {
	op     string
	remote boardOp
}

// NewBoard creates a board. remote may be nil for offline play.
func NewBoard(local *LocalBoard, remote Service, logger *log.Logger) *Board {
	if logger == nil {
		logger = discardLogger()
	}
	return &Board{local: local, remote: remote, logger: logger}
}

// Online reports whether a remote board is configured.
func (b *Board) Online() bool { return b.remote != nil }

// Entries returns the board, refreshed from the remote when possible.
func (b *Board) Entries(ctx context.Context) ([]Entry, error) {
	if b.remote == nil {
		return b.local.Entries(ctx)
	}
	return b.sync(ctx, "entries", nil, b.remote.Entries)
}

// Record stores score for name locally and submits it to the remote.
func (b *Board) Record(ctx context.Context, name string, score int) ([]Entry, error) {
	if b.remote == nil {
		return b.local.Record(ctx, name, score)
	}
	now := b.local.now()
	return b.sync(ctx, "record",
		func(list []Entry) []Entry { return Upsert(list, name, score, now) },
		func(ctx context.Context) ([]Entry, error) { return b.remote.Record(ctx, name, score) },
	)
}

// Rename renames a player locally and on the remote.
func (b *Board) Rename(ctx context.Context, oldName, newName string) ([]Entry, error) {
	if b.remote == nil {
		return b.local.Rename(ctx, oldName, newName)
	}
	return b.sync(ctx, "rename",
		func(list []Entry) []Entry { return Rename(list, oldName, newName) },
		func(ctx context.Context) ([]Entry, error) { return b.remote.Rename(ctx, oldName, newName) },
	)
}

// sync applies mutate locally (nil for a plain read), replays queued
// mutations and then runs remoteFn.
func (b *Board) sync(ctx context.Context, op string, mutate func([]Entry) []Entry, remoteFn boardOp) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var list []Entry
	var err error
	if mutate != nil {
		list, err = b.local.update(ctx, mutate)
	} else {
		list, err = b.local.Entries(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := b.flush(ctx); err != nil {
		return list, b.remoteFailed(op, mutate != nil, remoteFn, err)
	}
	remote, err := remoteFn(ctx)
	if err != nil {
		return list, b.remoteFailed(op, mutate != nil, remoteFn, err)
	}

	cached, err := b.local.Replace(ctx, remote)
	if err != nil {
		return list, err
	}
	return cached, nil
}

// flush replays queued mutations. Requests the remote rejects outright are
// dropped; anything else stops the replay.
func (b *Board) flush(ctx context.Context) error {
	for len(b.pending) > 0 {
		next := b.pending[0]
		if _, err := next.remote(ctx); err != nil {
			if !rejected(err) {
				return err
			}
			b.logger.Warn("remote leaderboard rejected queued change", "op", next.op, "error", err)
		}
		b.pending = b.pending[1:]
	}
	return nil
}

func (b *Board) remoteFailed(op string, queue bool, remoteFn boardOp, err error) error {
	if queue && !rejected(err) {
		b.pending = append(b.pending, pendingOp{op: op, remote: remoteFn})
	}
	b.logger.Warn("remote leaderboard failed", "op", op, "queued", len(b.pending), "error", err)
	return fmt.Errorf("leaderboard: remote %s: %w", op, err)
}

// rejected reports a client error that retrying will not fix.
func rejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se) &&
		se.Code >= 400 && se.Code < 500 &&
		se.Code != http.StatusTooManyRequests
}
