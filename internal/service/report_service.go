package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vp-madrs/internal/madrs"
	"vp-madrs/internal/repository"
)

// Report resume los perfiles almacenados: estadisticas de distribucion mas
// el conteo de violaciones de reglas clinicas por tipo.
type Report struct {
	ProfilesChecked int            `json:"profiles_checked"`
	Summary         madrs.Summary  `json:"summary"`
	TotalViolations int            `json:"total_violations"`
	ByRule          map[string]int `json:"by_rule"`
}

// ReportService arma reportes de control sobre los perfiles persistidos.
type ReportService struct {
	repo   repository.ProfileRepository
	logger *zap.Logger
}

func NewReportService(repo repository.ProfileRepository, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// Summary carga hasta limit perfiles recientes y devuelve el reporte.
func (s *ReportService) Summary(ctx context.Context, limit int) (Report, error) {
	if limit <= 0 {
		limit = 500
	}
	stored, err := s.repo.List(ctx, limit, 0)
	if err != nil {
		return Report{}, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]madrs.Profile, len(stored))
	report := Report{
		ProfilesChecked: len(stored),
		ByRule:          make(map[string]int),
	}
	for i, sp := range stored {
		profiles[i] = sp.Scores
		for _, v := range madrs.CheckProfile(sp.Scores, sp.TargetScore) {
			report.TotalViolations++
			report.ByRule[v.Rule]++
		}
	}
	report.Summary = madrs.Summarize(profiles)

	if report.TotalViolations > 0 {
		s.logger.Warn("stored profiles with rule violations",
			zap.Int("profiles", report.ProfilesChecked),
			zap.Int("violations", report.TotalViolations),
		)
	}
	return report, nil
}
