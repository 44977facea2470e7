package leaderboard

import (
	"context"
	"errors"
	"sync"
)

var errBroken = errors.New("disk on fire")

type memKV struct {
	mu     sync.Mutex
	data   map[string]string
	broken bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return "", false, errBroken
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return errBroken
	}
	m.data[key] = value
	return nil
}

func (m *memKV) setBroken(v bool) {
	m.mu.Lock()
	m.broken = v
	m.mu.Unlock()
}

// testBoard returns a local board with a fixed clock.
func testBoard(kv KV) *LocalBoard {
	b := NewLocalBoard(kv, "test")
	b.now = func() int64 { return 1000 }
	return b
}

type historyRecorder struct {
	mu   sync.Mutex
	runs []Entry
}

func (h *historyRecorder) SaveScore(player string, score int) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, Entry{Name: player, Score: score})
	return int64(len(h.runs)), nil
}
