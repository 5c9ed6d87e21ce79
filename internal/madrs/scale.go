package madrs

// Item identifica uno de los 10 items del instrumento MADRS.
type Item string

const (
	ItemReportedSadness           Item = "REPORTED_SADNESS"
	ItemApparentSadness           Item = "APPARENT_SADNESS"
	ItemInnerTension              Item = "INNER_TENSION"
	ItemReducedSleep              Item = "REDUCED_SLEEP"
	ItemReducedAppetite           Item = "REDUCED_APPETITE"
	ItemConcentrationDifficulties Item = "CONCENTRATION_DIFFICULTIES"
	ItemLassitude                 Item = "LASSITUDE"
	ItemInabilityToFeel           Item = "INABILITY_TO_FEEL"
	ItemPessimisticThoughts       Item = "PESSIMISTIC_THOUGHTS"
	ItemSuicidalThoughts          Item = "SUICIDAL_THOUGHTS"
)

// Factor es una de las 4 dimensiones clinicas latentes.
type Factor int

const (
	FactorSadness Factor = iota
	FactorNeurovegetative
	FactorDetachment
	FactorNegativeThought
)

func (f Factor) String() string {
	switch f {
	case FactorSadness:
		return "sadness"
	case FactorNeurovegetative:
		return "neurovegetative"
	case FactorDetachment:
		return "detachment"
	case FactorNegativeThought:
		return "negative_thought"
	}
	return "unknown"
}

const (
	numItems   = 10
	numFactors = 4

	// Rango valido por item y para el puntaje total.
	MinItemScore = 0
	MaxItemScore = 6
	MinTotal     = 0
	MaxTotal     = 60
)

type itemSpec struct {
	key        Item
	factor     Factor
	offset     float64
	residualSD float64
}

// Tabla fija de priors clinicos. Los offsets codifican que tan temprano
// aparece cada sintoma: positivo = se manifiesta con severidad baja,
// negativo = requiere severidad latente alta.
var itemSpecs = [numItems]itemSpec{
	{ItemReportedSadness, FactorSadness, 2.0, 0.5},
	{ItemApparentSadness, FactorSadness, 0.0, 0.5},
	{ItemInnerTension, FactorNeurovegetative, 0.0, 0.5},
	{ItemReducedSleep, FactorNeurovegetative, 0.0, 0.5},
	{ItemReducedAppetite, FactorNeurovegetative, -0.2, 0.5},
	{ItemConcentrationDifficulties, FactorDetachment, 0.0, 0.5},
	{ItemLassitude, FactorDetachment, 0.0, 0.5},
	{ItemInabilityToFeel, FactorDetachment, -0.5, 0.5},
	{ItemPessimisticThoughts, FactorNegativeThought, -0.5, 0.5},
	{ItemSuicidalThoughts, FactorNegativeThought, -2.0, 0.5},
}

// Correlaciones base entre factores. Son priors asumidos, no ajustados a
// datos; el escalado por severidad se aplica sobre una copia en cada
// generacion.
var baseFactorCorr = [numFactors][numFactors]float64{
	{1.00, 0.60, 0.60, 0.60},
	{0.60, 1.00, 0.60, 0.60},
	{0.60, 0.60, 1.00, 0.60},
	{0.60, 0.60, 0.60, 1.00},
}

// Items devuelve los items en el orden canonico del instrumento.
func Items() []Item {
	keys := make([]Item, numItems)
	for i, spec := range itemSpecs {
		keys[i] = spec.key
	}
	return keys
}

// Profile es el resultado de una generacion: puntaje entero 0-6 por item.
type Profile map[Item]int

// Total suma los puntajes de todos los items.
func (p Profile) Total() int {
	total := 0
	for _, score := range p {
		total += score
	}
	return total
}

// Vector devuelve los puntajes en orden canonico, listo para pgvector.
func (p Profile) Vector() []float32 {
	vec := make([]float32, numItems)
	for i, spec := range itemSpecs {
		vec[i] = float32(p[spec.key])
	}
	return vec
}

// Clone copia el perfil.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// SeverityBand clasifica un puntaje total segun los cortes estandar MADRS.
type SeverityBand string

const (
	BandLow      SeverityBand = "low"      // 0-19
	BandModerate SeverityBand = "moderate" // 20-34
	BandHigh     SeverityBand = "high"     // 35-60
)

func severityBand(total int) SeverityBand {
	switch {
	case total <= 19:
		return BandLow
	case total <= 34:
		return BandModerate
	default:
		return BandHigh
	}
}
