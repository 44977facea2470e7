package leaderboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// History records finished runs. *storage.Store implements it.
type History interface {
	SaveScore(player string, score int) (int64, error)
}

// Reporter submits final scores without blocking the game loop.
// It implements catch.ScoreReporter.
type Reporter struct {
	board   Service
	history History
	logger  *log.Logger
	timeout time.Duration
	onSaved func([]Entry)

	mu      sync.Mutex
	pending map[*submission]struct{}
	latest  map[string]*submission // by player key
}

// submission is one in-flight ReportScore call.
type submission struct {
	key  string
	done chan struct{}
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithTimeout bounds each submission.
func WithTimeout(d time.Duration) ReporterOption {
	return func(r *Reporter) { r.timeout = d }
}

// WithLogger sets the logger used for failed submissions.
func WithLogger(l *log.Logger) ReporterOption {
	return func(r *Reporter) { r.logger = l }
}

// OnSaved registers a callback receiving the board after each successful
// submission. It runs on the submitting goroutine.
func OnSaved(fn func([]Entry)) ReporterOption {
	return func(r *Reporter) { r.onSaved = fn }
}

// NewReporter creates a reporter. Either board or history may be nil.
func NewReporter(board Service, history History, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		board:   board,
		history: history,
		logger:  discardLogger(),
		timeout: DefaultTimeout,
		pending: make(map[*submission]struct{}),
		latest:  make(map[string]*submission),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReportScore stores the run in the history and, for positive scores, on
// the board. It returns immediately.
func (r *Reporter) ReportScore(player string, score int) {
	name := reportName(player)
	sub := &submission{key: strings.ToLower(name), done: make(chan struct{})}

	r.mu.Lock()
	r.pending[sub] = struct{}{}
	r.latest[sub.key] = sub
	r.mu.Unlock()

	go func() {
		defer r.finish(sub)
		r.submit(name, score)
	}()
}

func reportName(player string) string {
	if name := SanitizeName(player); name != "" {
		return name
	}
	return DefaultPlayer
}

func (r *Reporter) finish(sub *submission) {
	r.mu.Lock()
	delete(r.pending, sub)
	if r.latest[sub.key] == sub {
		delete(r.latest, sub.key)
	}
	r.mu.Unlock()
	close(sub.done)
}

func (r *Reporter) submit(name string, score int) {
	if r.history != nil {
		if _, err := r.history.SaveScore(name, score); err != nil {
			r.logger.Warn("could not save run", "player", name, "error", err)
		}
	}
	if r.board == nil || score <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	list, err := r.board.Record(ctx, name, score)
	if err != nil {
		r.logger.Warn("could not record score", "player", name, "score", score, "error", err)
	}
	// Board returns the local list alongside remote errors.
	if list != nil && r.onSaved != nil {
		r.onSaved(list)
	}
}

// Settled returns a channel closed once the latest submission for player
// has finished. It is already closed when nothing is pending.
func (r *Reporter) Settled(player string) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.latest[strings.ToLower(reportName(player))]; ok {
		return sub.done
	}
	done := make(chan struct{})
	close(done)
	return done
}

// Wait blocks until every submission started before the call finishes.
// Safe to call while other goroutines keep reporting.
func (r *Reporter) Wait() {
	r.mu.Lock()
	subs := make([]*submission, 0, len(r.pending))
	for sub := range r.pending {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		<-sub.done
	}
}
