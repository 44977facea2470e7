package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/vovakirdan/foodcatch/internal/catch"
)

var _ catch.ScoreReporter = (*Reporter)(nil)

func TestReporterRecordsScore(t *testing.T) {
	local := testBoard(newMemKV())
	history := &historyRecorder{}

	var mu sync.Mutex
	var saved []Entry
	r := NewReporter(local, history, OnSaved(func(list []Entry) {
		mu.Lock()
		saved = list
		mu.Unlock()
	}))

	r.ReportScore("  ann  ", 40)
	r.Wait()

	got, _ := local.Entries(context.Background())
	if len(got) != 1 || got[0].Name != "ann" || got[0].Score != 40 {
		t.Errorf("board = %v, expected ann with 40", got)
	}
	if len(history.runs) != 1 {
		t.Errorf("history has %d runs, expected 1", len(history.runs))
	}
	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 1 {
		t.Errorf("OnSaved() got %v, expected the updated board", saved)
	}
}

func TestReporterSkipsZeroScore(t *testing.T) {
	local := testBoard(newMemKV())
	history := &historyRecorder{}
	r := NewReporter(local, history)

	r.ReportScore("ann", 0)
	r.Wait()

	got, _ := local.Entries(context.Background())
	if len(got) != 0 {
		t.Errorf("board = %v, expected no entry for a zero score", got)
	}
	if len(history.runs) != 1 {
		t.Errorf("history has %d runs, expected the run to be kept", len(history.runs))
	}
}

func TestReporterDefaultName(t *testing.T) {
	local := testBoard(newMemKV())
	r := NewReporter(local, nil)

	r.ReportScore("   ", 7)
	r.Wait()

	got, _ := local.Entries(context.Background())
	if len(got) != 1 || got[0].Name != DefaultPlayer {
		t.Errorf("board = %v, expected %s", got, DefaultPlayer)
	}
}

func TestReporterStorageFailureDoesNotPanic(t *testing.T) {
	kv := newMemKV()
	kv.setBroken(true)
	r := NewReporter(testBoard(kv), nil)

	r.ReportScore("ann", 7)
	r.Wait()
}

// gatedBoard blocks Record until release is closed.
type gatedBoard struct {
	*LocalBoard
	release chan struct{}
}

func (g gatedBoard) Record(ctx context.Context, name string, score int) ([]Entry, error) {
	<-g.release
	return g.LocalBoard.Record(ctx, name, score)
}

func TestReporterSettledTracksPlayer(t *testing.T) {
	gate := gatedBoard{LocalBoard: testBoard(newMemKV()), release: make(chan struct{})}
	r := NewReporter(gate, nil)

	select {
	case <-r.Settled("ann"):
	default:
		t.Fatal("Settled() should be closed with nothing pending")
	}

	r.ReportScore("ANN", 30)
	annDone := r.Settled(" ann ")
	select {
	case <-annDone:
		t.Fatal("Settled() closed before the submission finished")
	default:
	}
	select {
	case <-r.Settled("bob"):
	default:
		t.Error("Settled() for another player should not wait")
	}

	close(gate.release)
	<-annDone

	got, _ := gate.Entries(context.Background())
	if len(got) != 1 || got[0].Score != 30 {
		t.Errorf("board = %v, expected ann with 30", got)
	}
}

func TestReporterConcurrentSessions(t *testing.T) {
	history := &historyRecorder{}
	r := NewReporter(testBoard(newMemKV()), history)

	const sessions, runs = 8, 20
	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("player%d", s)
			for i := 0; i < runs; i++ {
				r.ReportScore(name, i+1)
				if i%2 == 0 {
					<-r.Settled(name)
				} else {
					r.Wait()
				}
			}
		}()
	}
	wg.Wait()
	r.Wait()

	history.mu.Lock()
	defer history.mu.Unlock()
	if len(history.runs) != sessions*runs {
		t.Errorf("history has %d runs, expected %d", len(history.runs), sessions*runs)
	}
}
