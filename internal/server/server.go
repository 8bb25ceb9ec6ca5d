package server

import (
	"context"
	"errors"
	"net/http"

	"archery-results/internal/api"
	"archery-results/internal/constants"
	"archery-results/internal/domain"
	"archery-results/internal/metrics"
	"archery-results/internal/roster"
	"archery-results/internal/scoring"
	"archery-results/internal/service"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const genericErrorMessage = "Error fetching data"

type ResultsProvider interface {
	GetArcheryDB(ctx context.Context) (*domain.ArcheryDB, error)
	Flush(ctx context.Context) (int64, error)
}

type ResultsServer struct {
	results ResultsProvider
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewResultsServer(results ResultsProvider, m *metrics.Metrics, logger zerolog.Logger) *ResultsServer {
	return &ResultsServer{results: results, metrics: m, logger: logger}
}

func (s *ResultsServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/archers", s.getArchers)
	mux.HandleFunc("GET /api/archers/{id}", s.getArcher)
	mux.HandleFunc("GET /api/scores", s.getScores)
	mux.HandleFunc("GET /api/bm", s.categoryScores(constants.BarebowSeniorMen))
	mux.HandleFunc("GET /api/bw", s.categoryScores(constants.BarebowSeniorWomen))
	mux.HandleFunc("POST /api/admin/cache/flush", s.flushCache)
	mux.HandleFunc("GET /healthz", s.health)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

func (s *ResultsServer) getArchers(w http.ResponseWriter, r *http.Request) {
	db, err := s.results.GetArcheryDB(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, db)
}

func (s *ResultsServer) getArcher(w http.ResponseWriter, r *http.Request) {
	db, err := s.results.GetArcheryDB(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	archer, ok := db.Archers[r.PathValue("id")]
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "archer not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, archer)
}

func (s *ResultsServer) getScores(w http.ResponseWriter, r *http.Request) {
	s.writeScores(w, r, r.URL.Query().Get("category"))
}

func (s *ResultsServer) categoryScores(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeScores(w, r, category)
	}
}

func (s *ResultsServer) writeScores(w http.ResponseWriter, r *http.Request, category string) {
	db, err := s.results.GetArcheryDB(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, service.Scoreboards(db, category))
}

func (s *ResultsServer) flushCache(w http.ResponseWriter, r *http.Request) {
	if _, err := s.results.Flush(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *ResultsServer) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error string `json:"error"`
}

// fail logs the specific failure and answers with a generic 500.
func (s *ResultsServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	logger.Error().
		Err(err).
		Str("kind", errorKind(err)).
		Str("path", r.URL.Path).
		Msg("request failed")
	s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: genericErrorMessage})
}

func (s *ResultsServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write response")
	}
}

func errorKind(err error) string {
	var (
		upErr     *api.UpstreamFetchError
		keyErr    *api.ParticipantKeyError
		decodeErr *scoring.DecodeError
		resErr    *roster.IdentifierResolutionError
		consErr   *roster.RegistryConsistencyError
	)
	switch {
	case errors.As(err, &upErr):
		return "upstream_fetch"
	case errors.As(err, &keyErr):
		return "upstream_payload"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &resErr):
		return "identifier_resolution"
	case errors.As(err, &consErr):
		return "registry_consistency"
	case errors.Is(err, service.ErrNoEvents):
		return "no_events"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "internal"
}
