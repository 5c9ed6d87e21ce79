package http

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
	"vp-madrs/internal/repository"
	"vp-madrs/internal/service"
)

// ProfileHandler expone generacion, consulta y lotes de perfiles.
type ProfileHandler struct {
	logger    *zap.Logger
	generator *service.GeneratorService
	batch     *service.BatchService
	repo      repository.ProfileRepository
	limiter   service.BatchRateLimiter
	maxBatch  int
}

func NewProfileHandler(
	logger *zap.Logger,
	generator *service.GeneratorService,
	batch *service.BatchService,
	repo repository.ProfileRepository,
	limiter service.BatchRateLimiter,
	maxBatch int,
) *ProfileHandler {
	if maxBatch <= 0 {
		maxBatch = 1000
	}
	return &ProfileHandler{
		logger:    logger,
		generator: generator,
		batch:     batch,
		repo:      repo,
		limiter:   limiter,
		maxBatch:  maxBatch,
	}
}

// CreateProfile maneja POST /profiles.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req struct {
		TargetScore *int    `json:"target_score" binding:"required"`
		Seed        *uint64 `json:"seed"`
		Persist     *bool   `json:"persist"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	persist := true
	if req.Persist != nil {
		persist = *req.Persist
	}

	stored, err := h.generator.Generate(c.Request.Context(), service.GenerateInput{
		TargetScore: *req.TargetScore,
		Seed:        req.Seed,
		Persist:     persist,
	})
	if err != nil {
		if errors.Is(err, madrs.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_score must be between 0 and 60"})
			return
		}
		h.logger.Error("generate profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate profile"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": stored})
}

// GetProfile maneja GET /profiles/:id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	profile, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// ListProfiles maneja GET /profiles.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit := queryInt(c, "limit", 50, 200)
	offset := queryInt(c, "offset", 0, 1<<30)

	profiles, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

// SimilarProfiles maneja GET /profiles/:id/similar.
func (h *ProfileHandler) SimilarProfiles(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}
	k := queryInt(c, "k", 5, 50)

	base, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}

	// Se pide uno extra porque el propio perfil es su vecino mas cercano.
	neighbours, err := h.repo.SearchSimilar(c.Request.Context(), base.Embedding, k+1)
	if err != nil {
		h.logger.Error("similarity search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search profiles"})
		return
	}
	similar := make([]domain.StoredProfile, 0, k)
	for _, p := range neighbours {
		if p.ID == base.ID {
			continue
		}
		similar = append(similar, p)
		if len(similar) == k {
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"profile_id": base.ID, "similar": similar})
}

// CreateBatch maneja POST /batches.
func (h *ProfileHandler) CreateBatch(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	if h.limiter != nil && !h.limiter.Allow(claims.ClientID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "batch rate limit exceeded"})
		return
	}

	var req struct {
		N       *int    `json:"n" binding:"required"`
		Seed    *uint64 `json:"seed"`
		Persist bool    `json:"persist"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if *req.N <= 0 || *req.N > h.maxBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be between 1 and " + strconv.Itoa(h.maxBatch)})
		return
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	result, err := h.batch.Run(c.Request.Context(), service.BatchInput{
		N:       *req.N,
		Seed:    seed,
		Persist: req.Persist,
	})
	if err != nil {
		h.logger.Error("batch run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate batch"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"seed": seed, "batch": result})
}

func queryInt(c *gin.Context, name string, def, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
