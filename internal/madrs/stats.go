package madrs

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ItemStats resume la distribucion de un item sobre un lote de perfiles.
type ItemStats struct {
	Item   Item    `json:"item"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summary agrega estadisticas de un lote: media y desvio por item y del
// total, matriz de correlacion inter-item 10x10 y conteos por banda de
// severidad.
type Summary struct {
	N           int                  `json:"n"`
	Items       []ItemStats          `json:"items"`
	TotalMean   float64              `json:"total_mean"`
	TotalStdDev float64              `json:"total_std_dev"`
	Correlation [][]float64          `json:"correlation,omitempty"`
	BandCounts  map[SeverityBand]int `json:"band_counts"`
}

// Summarize calcula el resumen estadistico de un lote de perfiles. Con menos
// de dos perfiles no hay correlaciones ni desvios que reportar.
func Summarize(profiles []Profile) Summary {
	n := len(profiles)
	summary := Summary{
		N:          n,
		BandCounts: make(map[SeverityBand]int),
	}
	if n == 0 {
		return summary
	}

	data := mat.NewDense(n, numItems, nil)
	totals := make([]float64, n)
	for row, p := range profiles {
		total := 0
		for col, spec := range itemSpecs {
			score := p[spec.key]
			data.Set(row, col, float64(score))
			total += score
		}
		totals[row] = float64(total)
		summary.BandCounts[severityBand(total)]++
	}

	summary.Items = make([]ItemStats, numItems)
	col := make([]float64, n)
	for j, spec := range itemSpecs {
		mat.Col(col, j, data)
		mean, sd := stat.MeanStdDev(col, nil)
		if n < 2 {
			sd = 0
		}
		summary.Items[j] = ItemStats{Item: spec.key, Mean: mean, StdDev: sd}
	}

	totalMean, totalSD := stat.MeanStdDev(totals, nil)
	summary.TotalMean = totalMean
	if n >= 2 {
		summary.TotalStdDev = totalSD
	}

	if n >= 2 {
		corr := mat.NewSymDense(numItems, nil)
		stat.CorrelationMatrix(corr, data, nil)
		summary.Correlation = make([][]float64, numItems)
		for i := 0; i < numItems; i++ {
			summary.Correlation[i] = make([]float64, numItems)
			for j := 0; j < numItems; j++ {
				v := corr.At(i, j)
				// Items sin varianza producen NaN; se reporta 0.
				if math.IsNaN(v) {
					v = 0
				}
				summary.Correlation[i][j] = v
			}
		}
	}

	return summary
}
