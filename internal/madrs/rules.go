package madrs

// ApplyClinicalRules aplica las reglas de consistencia clinica sobre el
// perfil, en orden fijo y una sola vez. Las reglas pueden mover el total 1-2
// puntos respecto del objetivo; no se re-ejecuta el ajuste despues para
// evitar que ambos lazos oscilen entre si.
func ApplyClinicalRules(p Profile) {
	// Mood Gate: sin tristeza reportada no hay ideacion suicida ni
	// pesimismo marcado.
	if p[ItemReportedSadness] <= 1 {
		if p[ItemSuicidalThoughts] > 1 {
			p[ItemSuicidalThoughts] = 1
		}
		if p[ItemPessimisticThoughts] > 2 {
			p[ItemPessimisticThoughts] = 2
		}
	}

	// Anhedonia Link: incapacidad de sentir severa implica tristeza
	// reportada al menos moderada.
	if p[ItemInabilityToFeel] >= 4 && p[ItemReportedSadness] < 2 {
		p[ItemReportedSadness] = 3
	}

	// Tension-Sleep Link: tension interna alta no convive con sueno intacto.
	if p[ItemInnerTension] >= 4 && p[ItemReducedSleep] == 0 {
		p[ItemReducedSleep] = 2
	}
}
