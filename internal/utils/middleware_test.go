package utils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	mu     sync.Mutex
	route  string
	status int
}

func (s *seen) ObserveRequest(_, route string, status int, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route, s.status = route, status
}

func TestRequestIDGenerated(t *testing.T) {
	var rid string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { rid = RID(r.Context()) }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	assert.Equal(t, rid, rec.Header().Get("X-Request-ID"))
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	obs := &seen{}
	r := chi.NewRouter()
	r.Use(Logger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(Instrument(obs))
	r.Get("/v1/campaigns/{id}/daily", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/campaigns/na-taycan-launch/daily", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "/v1/campaigns/{id}/daily", obs.route)
	assert.Equal(t, http.StatusTeapot, obs.status)
}

func TestRIDEmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, RID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
