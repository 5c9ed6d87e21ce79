package madrs

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

var (
	// ErrInvalidTarget indica un puntaje objetivo fuera de [0, 60].
	ErrInvalidTarget = errors.New("madrs: target score out of range [0, 60]")
	// ErrNotPositiveDefinite indica que la covarianza escalada no admite
	// factorizacion de Cholesky. No deberia ocurrir con las constantes
	// actuales; se verifica igual para fallar rapido en vez de producir NaNs.
	ErrNotPositiveDefinite = errors.New("madrs: scaled covariance is not positive definite")
)

const (
	// Desvio estandar latente por factor. Parametro de calibracion: con 1.0
	// la covarianza coincide con la matriz de correlacion escalada.
	defaultFactorSD = 1.0

	// Tope de iteraciones del lazo de ajuste al objetivo.
	maxAdjustIterations = 100

	// Umbral de severidad donde las correlaciones alcanzan su valor base.
	fullCorrelationScore = 30.0
)

// Generator produce perfiles MADRS plausibles para un puntaje objetivo.
// Cada Generator lleva su propia fuente aleatoria; para uso concurrente
// crear un Generator por goroutine.
type Generator struct {
	src      rand.Source
	rng      *rand.Rand
	factorSD float64
}

// Option ajusta parametros de calibracion del generador.
type Option func(*Generator)

// WithFactorSD fija el desvio estandar latente por factor.
func WithFactorSD(sd float64) Option {
	return func(g *Generator) {
		if sd > 0 {
			g.factorSD = sd
		}
	}
}

// NewGenerator crea un generador determinista para la semilla dada.
func NewGenerator(seed uint64, opts ...Option) *Generator {
	src := rand.NewPCG(seed, seed)
	g := &Generator{
		src:      src,
		rng:      rand.New(src),
		factorSD: defaultFactorSD,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate corre el pipeline completo: medias por factor, muestreo latente
// correlacionado, sintesis por item, discretizacion con ajuste al objetivo y
// pase final de reglas clinicas. El total final puede diferir del objetivo
// en 1-2 puntos por las reglas; eso es esperado, no un error.
func (g *Generator) Generate(target int) (Profile, error) {
	if target < MinTotal || target > MaxTotal {
		return nil, ErrInvalidTarget
	}

	means := factorMeans(target)
	factors, err := g.sampleLatentFactors(means, target)
	if err != nil {
		return nil, err
	}
	values := g.synthesizeItems(factors)
	scores := adjustToTarget(values, target)

	profile := make(Profile, numItems)
	for i, spec := range itemSpecs {
		profile[spec.key] = scores[i]
	}
	ApplyClinicalRules(profile)
	return profile, nil
}

// factorMeans deriva las medias por factor respetando los offsets por item.
// Identidad que preservan los offsets: la suma de (media del factor + offset)
// sobre los 10 items reproduce el objetivo exacto.
func factorMeans(target int) []float64 {
	base := float64(target) / float64(numItems)
	counts := make([]float64, numFactors)
	offsetSums := make([]float64, numFactors)
	for _, spec := range itemSpecs {
		counts[spec.factor]++
		offsetSums[spec.factor] += spec.offset
	}

	means := make([]float64, numFactors)
	for f := range means {
		means[f] = (base*counts[f] - offsetSums[f]) / counts[f]
	}
	return means
}

// severityScale atenua las correlaciones a baja severidad: 0 en el piso,
// valor base a partir de ~30 puntos.
func severityScale(target int) float64 {
	return math.Min(1.0, float64(target)/fullCorrelationScore)
}

// scaledCorrelation construye una copia de la matriz base con los elementos
// fuera de la diagonal multiplicados por la escala de severidad.
func scaledCorrelation(target int) *mat.SymDense {
	s := severityScale(target)
	m := mat.NewSymDense(numFactors, nil)
	for i := 0; i < numFactors; i++ {
		m.SetSym(i, i, 1.0)
		for j := i + 1; j < numFactors; j++ {
			m.SetSym(i, j, baseFactorCorr[i][j]*s)
		}
	}
	return m
}

// sampleLatentFactors toma una muestra de la normal multivariada con las
// medias dadas y covarianza factorSD^2 * correlacion escalada. La
// factorizacion de Cholesky interna de distmv es a la vez el chequeo de
// definida-positividad exigido por el modelo.
func (g *Generator) sampleLatentFactors(means []float64, target int) ([]float64, error) {
	corr := scaledCorrelation(target)
	variance := g.factorSD * g.factorSD
	cov := mat.NewSymDense(numFactors, nil)
	for i := 0; i < numFactors; i++ {
		for j := i; j < numFactors; j++ {
			cov.SetSym(i, j, corr.At(i, j)*variance)
		}
	}

	dist, ok := distmv.NewNormal(means, cov, g.src)
	if !ok {
		return nil, ErrNotPositiveDefinite
	}
	return dist.Rand(nil), nil
}

// synthesizeItems proyecta cada item sobre su factor: valor latente + offset
// + ruido residual independiente.
func (g *Generator) synthesizeItems(factors []float64) []float64 {
	values := make([]float64, numItems)
	for i, spec := range itemSpecs {
		noise := g.rng.NormFloat64() * spec.residualSD
		values[i] = factors[spec.factor] + spec.offset + noise
	}
	return values
}

// adjustToTarget discretiza los valores continuos y acerca la suma al
// objetivo con incrementos unitarios guiados por los residuos. El residuo del
// item tocado se corrige en ∓1 para que no monopolice los ajustes. Si todos
// los items quedan en un borde, corta temprano y el perfil queda best-effort.
func adjustToTarget(values []float64, target int) []int {
	scores := make([]int, len(values))
	residuals := make([]float64, len(values))
	sum := 0
	for i, v := range values {
		s := int(math.Round(v))
		if s < MinItemScore {
			s = MinItemScore
		}
		if s > MaxItemScore {
			s = MaxItemScore
		}
		scores[i] = s
		residuals[i] = v - float64(s)
		sum += s
	}

	diff := target - sum
	for iter := 0; iter < maxAdjustIterations && diff != 0; iter++ {
		best := -1
		if diff > 0 {
			for i, s := range scores {
				if s >= MaxItemScore {
					continue
				}
				if best == -1 || residuals[i] > residuals[best] {
					best = i
				}
			}
			if best == -1 {
				break
			}
			scores[best]++
			residuals[best]--
			diff--
		} else {
			for i, s := range scores {
				if s <= MinItemScore {
					continue
				}
				if best == -1 || residuals[i] < residuals[best] {
					best = i
				}
			}
			if best == -1 {
				break
			}
			scores[best]--
			residuals[best]++
			diff++
		}
	}
	return scores
}
