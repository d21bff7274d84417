package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-matching-backend/config"
	v1 "go-matching-backend/internal/delivery/http/v1"
	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"
	"go-matching-backend/internal/metrics"
	"go-matching-backend/internal/notify"
	"go-matching-backend/internal/repository/memory"
	"go-matching-backend/internal/usecase"
	"go-matching-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	router   *gin.Engine
	profiles *memory.ProfileSource
	store    *memory.MatchStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := memory.NewProfileSource()
	store := memory.NewMatchStore()
	m := metrics.New()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	orch := matching.NewOrchestrator(matching.NewEngine(matching.DefaultWeights()), 2)
	matchUC := usecase.NewMatchUsecase(profiles, store, orch, notify.NopSink{}, m, usecase.MatchConfig{
		RunTimeout:  time.Second,
		MaxPageSize: 100,
	})

	cfg := &config.Config{
		JWTSecret:                testSecret,
		MatchMaxBatchSize:        3,
		RateLimitWindowSeconds:   60,
		RateLimitRunThreshold:    1000,
		RateLimitGlobalThreshold: 1000,
		AllowedOrigins:           []string{"http://localhost:3000"},
	}

	router := v1.NewRouter(v1.RouterDeps{
		MatchUC:  matchUC,
		HealthUC: usecase.NewHealthUsecase(nil),
		Validate: validation.New(),
		Gatherer: reg,
		Config:   cfg,
	})
	return &testServer{router: router, profiles: profiles, store: store}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, auth bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+token(t, "user-1"))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) seed() {
	s.profiles.PutSeeker(domain.SeekerProfile{
		ID:         "s1",
		University: "MIT",
		Skills:     []string{"Go", "SQL"},
		LookingFor: []domain.Intent{domain.IntentMentorship},
	})
	for i := 0; i < 3; i++ {
		s.profiles.PutCandidate(domain.CandidateProfile{
			ID:           fmt.Sprintf("c%d", i),
			University:   "MIT",
			Skills:       []string{"go"},
			Availability: domain.AvailabilityAvailable,
		})
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/v1/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))
}

func TestRunRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "s1"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestRunThenQuery(t *testing.T) {
	s := newTestServer(t)
	s.seed()

	w, env := s.do(t, http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "s1"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run domain.RunResult
	require.NoError(t, json.Unmarshal(env.Data, &run))
	assert.Len(t, run.Produced, 3)
	assert.Equal(t, 3, run.Created)

	w, env = s.do(t, http.MethodGet, "/v1/match/seeker/s1?page=1&limit=2", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var page domain.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c0", page.Items[0].CandidateID)
	assert.Equal(t, 1, page.Items[0].Rank)

	w, env = s.do(t, http.MethodGet, "/v1/match/candidate/c1", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "s1", page.Items[0].SeekerID)

	w, env = s.do(t, http.MethodGet, "/v1/match/s1/c1", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var detail domain.MatchDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Nil(t, detail.ViewedAt)
	assert.Contains(t, detail.Explanation, "Same university")

	w, env = s.do(t, http.MethodPost, "/v1/match/s1/c1/view", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var rec domain.MatchRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.NotNil(t, rec.ViewedAt)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	s.seed()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		auth   bool
		want   int
	}{
		{"unknown seeker", http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "ghost"}, true, http.StatusNotFound},
		{"missing seeker id", http.MethodPost, "/v1/match/run", gin.H{}, true, http.StatusBadRequest},
		{"malformed seeker id", http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "a b"}, true, http.StatusBadRequest},
		{"batch too large", http.MethodPost, "/v1/match/batch", gin.H{"seeker_ids": []string{"a", "b", "c", "d"}}, true, http.StatusBadRequest},
		{"batch duplicates", http.MethodPost, "/v1/match/batch", gin.H{"seeker_ids": []string{"a", "a"}}, true, http.StatusBadRequest},
		{"page zero", http.MethodGet, "/v1/match/seeker/s1?page=0", nil, false, http.StatusBadRequest},
		{"limit not a number", http.MethodGet, "/v1/match/seeker/s1?limit=ten", nil, false, http.StatusBadRequest},
		{"page past addressable range", http.MethodGet, "/v1/match/seeker/s1?page=9223372036854775807", nil, false, http.StatusBadRequest},
		{"missing match", http.MethodGet, "/v1/match/s1/nobody", nil, false, http.StatusNotFound},
		{"view missing match", http.MethodPost, "/v1/match/s1/nobody/view", nil, true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, tt.method, tt.path, tt.body, tt.auth)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.False(t, env.Success)
		})
	}
}

func TestUnavailableIsRetryable(t *testing.T) {
	s := newTestServer(t)
	s.profiles.SetErr(assert.AnError)

	w, env := s.do(t, http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "s1"}, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"retryable": true}`, string(env.Error))
}

func TestBatch(t *testing.T) {
	s := newTestServer(t)
	s.seed()

	w, env := s.do(t, http.MethodPost, "/v1/match/batch", gin.H{"seeker_ids": []string{"s1", "ghost"}}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res domain.BatchRunResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Len(t, res.Results, 1)
	assert.Contains(t, res.Failed, "ghost")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seed()
	s.do(t, http.MethodPost, "/v1/match/run", gin.H{"seeker_id": "s1"}, true)

	w, _ := s.do(t, http.MethodGet, "/v1/metrics", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), metrics.MetricRunsTotal)
}
