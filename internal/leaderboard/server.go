package leaderboard

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// Path is the route the leaderboard is served on.
const Path = "/api/leaderboard"

const maxBodyBytes = 64 << 10

// Server exposes a Service over HTTP.
//
//	GET  -> {"entries": [...]}
//	POST {"type":"record","name":...,"score":...}
//	POST {"type":"rename","oldName":...,"newName":...}
type Server struct {
	board   Service
	logger  *log.Logger
	limiter *rate.Limiter
	router  *mux.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRateLimit limits POST requests to r per second with the given burst.
func WithRateLimit(r float64, burst int) ServerOption {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Limit(r), burst) }
}

// WithServerLogger sets the request logger.
func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a handler serving board on Path.
func NewServer(board Service, opts ...ServerOption) *Server {
	s := &Server{
		board:   board,
		logger:  discardLogger(),
		limiter: rate.NewLimiter(20, 40),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.requestLog)
	r.HandleFunc(Path, s.handleGet).Methods(http.MethodGet)
	r.HandleFunc(Path, s.handlePost).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "remote", r.RemoteAddr, "took", time.Since(start))
	})
}

type mutationRequest struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	OldName string  `json:"oldName"`
	NewName string  `json:"newName"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	entries, err := s.board.Entries(r.Context())
	if err != nil {
		s.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boardResponse{Entries: entries})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	var req mutationRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}

	var entries []Entry
	switch req.Type {
	case "record":
		entries, err = s.board.Record(r.Context(), req.Name, scoreFromNumber(req.Score))
	case "rename":
		entries, err = s.board.Rename(r.Context(), req.OldName, req.NewName)
	default:
		writeError(w, http.StatusBadRequest, "Unknown type")
		return
	}
	if err != nil {
		s.unavailable(w, err)
		return
	}

	s.logger.Info("leaderboard updated", "type", req.Type, "entries", len(entries))
	writeJSON(w, http.StatusOK, boardResponse{Entries: entries})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func (s *Server) unavailable(w http.ResponseWriter, err error) {
	s.logger.Error("leaderboard storage failed", "error", err)
	writeError(w, http.StatusServiceUnavailable, "Leaderboard unavailable")
}

// scoreFromNumber floors a JSON number into a score.
func scoreFromNumber(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Floor(min(v, math.MaxInt32)))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // Best-effort write; the client may be gone
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
