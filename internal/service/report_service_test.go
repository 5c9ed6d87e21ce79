package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
)

func storedFromScores(target int, scores madrs.Profile) domain.StoredProfile {
	return domain.StoredProfile{
		TargetScore: target,
		ActualTotal: scores.Total(),
		Scores:      scores,
	}
}

func TestReportServiceSummary(t *testing.T) {
	clean := madrs.Profile{
		madrs.ItemReportedSadness:           3,
		madrs.ItemApparentSadness:           3,
		madrs.ItemInnerTension:              2,
		madrs.ItemReducedSleep:              2,
		madrs.ItemReducedAppetite:           1,
		madrs.ItemConcentrationDifficulties: 2,
		madrs.ItemLassitude:                 2,
		madrs.ItemInabilityToFeel:           2,
		madrs.ItemPessimisticThoughts:       2,
		madrs.ItemSuicidalThoughts:          1,
	}
	// Ideacion suicida sin tristeza: viola el mood gate.
	dirty := clean.Clone()
	dirty[madrs.ItemReportedSadness] = 1
	dirty[madrs.ItemApparentSadness] = 1
	dirty[madrs.ItemSuicidalThoughts] = 4

	repo := &mockProfileRepo{listed: []domain.StoredProfile{
		storedFromScores(clean.Total(), clean),
		storedFromScores(dirty.Total(), dirty),
	}}
	svc := NewReportService(repo, zap.NewNop())

	report, err := svc.Summary(context.Background(), 100)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if report.ProfilesChecked != 2 {
		t.Fatalf("profiles checked = %d, want 2", report.ProfilesChecked)
	}
	if report.TotalViolations != 1 {
		t.Fatalf("total violations = %d, want 1 (%v)", report.TotalViolations, report.ByRule)
	}
	if report.ByRule[madrs.RuleMoodGateSuicidal] != 1 {
		t.Fatalf("by rule = %v, want one mood gate violation", report.ByRule)
	}
	if report.Summary.N != 2 {
		t.Fatalf("summary N = %d, want 2", report.Summary.N)
	}
}

func TestReportServicePropagatesListError(t *testing.T) {
	repo := &mockProfileRepo{err: context.DeadlineExceeded}
	svc := NewReportService(repo, zap.NewNop())
	if _, err := svc.Summary(context.Background(), 10); err == nil {
		t.Fatalf("expected list error to propagate")
	}
}
