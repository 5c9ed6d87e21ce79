package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/service"
)

type stubRepo struct {
	byID   map[uuid.UUID]domain.StoredProfile
	listed []domain.StoredProfile
}

func (s *stubRepo) Create(ctx context.Context, profile domain.StoredProfile) error {
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.StoredProfile, error) {
	profile, ok := s.byID[id]
	if !ok {
		return domain.StoredProfile{}, pgx.ErrNoRows
	}
	return profile, nil
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]domain.StoredProfile, error) {
	return s.listed, nil
}

func (s *stubRepo) SearchSimilar(ctx context.Context, embedding pgvector.Vector, k int) ([]domain.StoredProfile, error) {
	if len(s.listed) > k {
		return s.listed[:k], nil
	}
	return s.listed, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

func newTestHandler(repo *stubRepo, limiter service.BatchRateLimiter) *ProfileHandler {
	logger := zap.NewNop()
	gen := service.NewGeneratorService(repo, logger)
	batch := service.NewBatchService(gen, logger)
	return NewProfileHandler(logger, gen, batch, repo, limiter, 100)
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateProfileHappyPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.POST("/profiles", h.CreateProfile)

	rec := postJSON(r, "/profiles", `{"target_score": 30, "seed": 42, "persist": false}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Profile domain.StoredProfile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Profile.TargetScore != 30 {
		t.Fatalf("target = %d, want 30", resp.Profile.TargetScore)
	}
	if len(resp.Profile.Scores) != 10 {
		t.Fatalf("scores = %d items, want 10", len(resp.Profile.Scores))
	}
	if drift := resp.Profile.ActualTotal - 30; drift > 2 || drift < -2 {
		t.Fatalf("total %d drifts more than 2 from target", resp.Profile.ActualTotal)
	}
}

func TestCreateProfileRejectsOutOfRangeTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.POST("/profiles", h.CreateProfile)

	if rec := postJSON(r, "/profiles", `{"target_score": 61}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for target 61, got %d", rec.Code)
	}
	if rec := postJSON(r, "/profiles", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing target, got %d", rec.Code)
	}
}

func TestCreateProfileAcceptsZeroTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.POST("/profiles", h.CreateProfile)

	rec := postJSON(r, "/profiles", `{"target_score": 0, "persist": false}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for target 0, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestGetProfileNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{byID: map[uuid.UUID]domain.StoredProfile{}}, nil)
	r := gin.New()
	r.GET("/profiles/:id", h.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/profiles/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProfileRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.GET("/profiles/:id", h.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/profiles/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateBatchRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, denyLimiter{})
	r := gin.New()
	r.POST("/batches", h.CreateBatch)

	rec := postJSON(r, "/batches", `{"n": 10}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestCreateBatchHappyPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.POST("/batches", h.CreateBatch)

	rec := postJSON(r, "/batches", `{"n": 5, "seed": 11}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Seed  uint64              `json:"seed"`
		Batch service.BatchResult `json:"batch"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Seed != 11 {
		t.Fatalf("seed = %d, want 11", resp.Seed)
	}
	if resp.Batch.Generated != 5 || len(resp.Batch.Rows) != 5 {
		t.Fatalf("generated = %d rows = %d, want 5", resp.Batch.Generated, len(resp.Batch.Rows))
	}
}

func TestCreateBatchRejectsOversizedN(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(&stubRepo{}, nil)
	r := gin.New()
	r.POST("/batches", h.CreateBatch)

	rec := postJSON(r, "/batches", `{"n": 101}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for n over limit, got %d", rec.Code)
	}
}
