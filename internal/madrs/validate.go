package madrs

import "fmt"

// Nombres de regla reportados por CheckProfile.
const (
	RuleItemRange        = "item_range_0_to_6"
	RuleMoodGateSuicidal = "mood_gate_suicidal"
	RuleMoodGatePessim   = "mood_gate_pessimism"
	RuleAnhedoniaLink    = "anhedonia_link"
	RuleTensionSleepLink = "tension_sleep_link"
	RuleTotalDrift       = "total_within_rule_drift"
)

// maxRuleDrift es la deriva de total tolerada despues del pase de reglas.
const maxRuleDrift = 2

// Violation describe un incumplimiento de rango o de regla clinica.
type Violation struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

// CheckProfile revisa un perfil ya generado contra el rango valido, las
// reglas clinicas y la deriva tolerada respecto del objetivo.
func CheckProfile(p Profile, target int) []Violation {
	var violations []Violation

	for _, spec := range itemSpecs {
		score := p[spec.key]
		if score < MinItemScore || score > MaxItemScore {
			violations = append(violations, Violation{
				Rule:   RuleItemRange,
				Detail: fmt.Sprintf("%s=%d out of range [%d, %d]", spec.key, score, MinItemScore, MaxItemScore),
			})
		}
	}

	if p[ItemReportedSadness] <= 1 {
		if p[ItemSuicidalThoughts] > 1 {
			violations = append(violations, Violation{
				Rule: RuleMoodGateSuicidal,
				Detail: fmt.Sprintf("SUICIDAL_THOUGHTS=%d with REPORTED_SADNESS=%d",
					p[ItemSuicidalThoughts], p[ItemReportedSadness]),
			})
		}
		if p[ItemPessimisticThoughts] > 2 {
			violations = append(violations, Violation{
				Rule: RuleMoodGatePessim,
				Detail: fmt.Sprintf("PESSIMISTIC_THOUGHTS=%d with REPORTED_SADNESS=%d",
					p[ItemPessimisticThoughts], p[ItemReportedSadness]),
			})
		}
	}

	if p[ItemInabilityToFeel] >= 4 && p[ItemReportedSadness] < 2 {
		violations = append(violations, Violation{
			Rule: RuleAnhedoniaLink,
			Detail: fmt.Sprintf("INABILITY_TO_FEEL=%d with REPORTED_SADNESS=%d",
				p[ItemInabilityToFeel], p[ItemReportedSadness]),
		})
	}

	if p[ItemInnerTension] >= 4 && p[ItemReducedSleep] == 0 {
		violations = append(violations, Violation{
			Rule:   RuleTensionSleepLink,
			Detail: fmt.Sprintf("INNER_TENSION=%d with REDUCED_SLEEP=0", p[ItemInnerTension]),
		})
	}

	if drift := p.Total() - target; drift > maxRuleDrift || drift < -maxRuleDrift {
		violations = append(violations, Violation{
			Rule:   RuleTotalDrift,
			Detail: fmt.Sprintf("actual_total=%d drifts %d from target=%d", p.Total(), drift, target),
		})
	}

	return violations
}
