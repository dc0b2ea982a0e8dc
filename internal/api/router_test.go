package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsi-rotation/internal/decision"
	"rsi-rotation/internal/model"
	"rsi-rotation/internal/runner"
	"rsi-rotation/internal/state"
)

type stubProvider struct{}

func (stubProvider) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes, nil
}

func newTestServer(t *testing.T) (*Server, state.Store) {
	t.Helper()
	graph, err := decision.Rotation()
	require.NoError(t, err)
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	r := runner.New(graph, stubProvider{}, store, runner.Options{})
	return &Server{Runner: r, Store: store}, store
}

func TestHealthRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.NewRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSignalRouteBeforeFirstRun(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.NewRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/signal", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunRouteTriggersEvaluation(t *testing.T) {
	srv, store := newTestServer(t)
	mux := srv.NewRouter()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, decision.LabelVIXGroup, body["signal"])

	// The record is now readable through the signal route.
	saved, err := store.Load(context.Background())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/signal", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.SignalRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved.Signal, got.Signal)
}

func TestRunRouteRejectsGet(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.NewRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/run", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
