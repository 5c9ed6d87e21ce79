package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
	"vp-madrs/internal/repository"
)

// GeneratorService orquesta la generacion de un perfil: corre el pipeline,
// arma el registro y opcionalmente lo persiste.
type GeneratorService struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewGeneratorService(repo repository.ProfileRepository, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{repo: repo, logger: logger}
}

// GenerateInput describe una solicitud de generacion. Seed en nil pide una
// semilla aleatoria; con semilla fija la salida es determinista.
type GenerateInput struct {
	TargetScore int
	Seed        *uint64
	Persist     bool
}

// Generate produce un perfil para el puntaje objetivo y lo persiste si se
// pidio. El total real puede diferir del objetivo hasta 2 puntos por el pase
// de reglas clinicas.
func (s *GeneratorService) Generate(ctx context.Context, in GenerateInput) (domain.StoredProfile, error) {
	seed := rand.Uint64()
	if in.Seed != nil {
		seed = *in.Seed
	}

	profile, err := madrs.NewGenerator(seed).Generate(in.TargetScore)
	if err != nil {
		return domain.StoredProfile{}, fmt.Errorf("generate profile: %w", err)
	}

	stored := domain.StoredProfile{
		ID:          uuid.New(),
		TargetScore: in.TargetScore,
		ActualTotal: profile.Total(),
		Scores:      profile,
		Embedding:   pgvector.NewVector(profile.Vector()),
		Seed:        int64(seed),
		CreatedAt:   time.Now().UTC(),
	}

	if in.Persist && s.repo != nil {
		if err := s.repo.Create(ctx, stored); err != nil {
			return domain.StoredProfile{}, fmt.Errorf("store profile: %w", err)
		}
	}

	s.logger.Info("profile generated",
		zap.String("profile_id", stored.ID.String()),
		zap.Int("target", stored.TargetScore),
		zap.Int("total", stored.ActualTotal),
		zap.Int("drift", stored.ActualTotal-stored.TargetScore),
		zap.Bool("persisted", in.Persist && s.repo != nil),
	)
	return stored, nil
}
