package service

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
)

// Parametros del muestreo de severidad para lotes: una gaussiana centrada en
// severidad moderada, recortada lejos de los extremos del instrumento.
const (
	batchTargetMean = 25.0
	batchTargetSD   = 11.0
	batchMinTarget  = 5
	batchMaxTarget  = 55
	batchScale      = "madrs"
)

var ErrInvalidBatchSize = errors.New("service: batch size must be positive")

// BatchService genera lotes de perfiles con persona y estilo de comunicacion
// asignados al azar, reproducibles por semilla.
type BatchService struct {
	generator *GeneratorService
	logger    *zap.Logger
}

func NewBatchService(generator *GeneratorService, logger *zap.Logger) *BatchService {
	return &BatchService{generator: generator, logger: logger}
}

type BatchInput struct {
	N       int
	Seed    uint64
	Persist bool
}

type BatchResult struct {
	Rows      []domain.BatchRow `json:"rows"`
	Generated int               `json:"generated"`
	Failed    int               `json:"failed"`
	Summary   madrs.Summary     `json:"summary"`
}

// Run genera N perfiles. La semilla del lote fija la eleccion de personas,
// estilos, objetivos y las semillas por perfil, asi que el lote completo es
// reproducible.
func (s *BatchService) Run(ctx context.Context, in BatchInput) (BatchResult, error) {
	if in.N <= 0 {
		return BatchResult{}, ErrInvalidBatchSize
	}

	rng := rand.New(rand.NewPCG(in.Seed, in.Seed))
	rows := make([]domain.BatchRow, 0, in.N)
	profiles := make([]madrs.Profile, 0, in.N)
	failed := 0

	for i := 0; i < in.N; i++ {
		if err := ctx.Err(); err != nil {
			return BatchResult{}, err
		}

		persona := personas[rng.IntN(len(personas))]
		style := communicationStyles[rng.IntN(len(communicationStyles))]
		target := clampTarget(int(math.Round(rng.NormFloat64()*batchTargetSD + batchTargetMean)))
		seed := rng.Uint64()

		stored, err := s.generator.Generate(ctx, GenerateInput{
			TargetScore: target,
			Seed:        &seed,
			Persist:     in.Persist,
		})
		if err != nil {
			failed++
			s.logger.Warn("batch profile failed", zap.Int("index", i), zap.Error(err))
			continue
		}

		rows = append(rows, domain.BatchRow{
			ProfileID:            i,
			Scale:                batchScale,
			PersonaName:          persona.Name,
			PersonaAge:           persona.Age,
			PersonaOccupation:    persona.Occupation,
			PersonaLifeSituation: persona.LifeSituation,
			CommunicationStyle:   style,
			TargetScore:          target,
			ActualTotalScore:     stored.ActualTotal,
			Scores:               stored.Scores,
		})
		profiles = append(profiles, stored.Scores)
	}

	s.logger.Info("batch generated",
		zap.Int("requested", in.N),
		zap.Int("generated", len(rows)),
		zap.Int("failed", failed),
	)
	return BatchResult{
		Rows:      rows,
		Generated: len(rows),
		Failed:    failed,
		Summary:   madrs.Summarize(profiles),
	}, nil
}

func clampTarget(target int) int {
	if target < batchMinTarget {
		return batchMinTarget
	}
	if target > batchMaxTarget {
		return batchMaxTarget
	}
	return target
}
