package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// KV is the key/value store a board snapshot is kept in.
// *storage.Store implements it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// LocalBoard keeps a board as a JSON snapshot under one key.
// Read-modify-write cycles are serialized within the process.
type LocalBoard struct {
	kv  KV
	key string
	now func() int64

	mu sync.Mutex
}

// NewLocalBoard creates a board stored under key.
func NewLocalBoard(kv KV, key string) *LocalBoard {
	return &LocalBoard{
		kv:  kv,
		key: key,
		now: func() int64 { return time.Now().UnixMilli() },
	}
}

// Entries returns the stored board. A corrupt snapshot reads as empty.
func (b *LocalBoard) Entries(ctx context.Context) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Record stores score for name.
func (b *LocalBoard) Record(ctx context.Context, name string, score int) ([]Entry, error) {
	return b.update(ctx, func(list []Entry) []Entry {
		return Upsert(list, name, score, b.now())
	})
}

// Rename moves oldName's entry to newName.
func (b *LocalBoard) Rename(ctx context.Context, oldName, newName string) ([]Entry, error) {
	return b.update(ctx, func(list []Entry) []Entry {
		return Rename(list, oldName, newName)
	})
}

// Replace overwrites the stored board with entries.
func (b *LocalBoard) Replace(ctx context.Context, entries []Entry) ([]Entry, error) {
	return b.update(ctx, func([]Entry) []Entry {
		return entries
	})
}

func (b *LocalBoard) update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	list = Normalize(fn(list))

	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: encode: %w", err)
	}
	if err := b.kv.Put(ctx, b.key, string(data)); err != nil {
		return nil, fmt.Errorf("leaderboard: save: %w", err)
	}
	return list, nil
}

func (b *LocalBoard) load(ctx context.Context) ([]Entry, error) {
	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}
	if !ok {
		return []Entry{}, nil
	}

	var list []Entry
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []Entry{}, nil
	}
	return Normalize(list), nil
}
