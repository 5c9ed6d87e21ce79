package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
)

// Header fijo compatible con los exports historicos: metadata de la fila y
// una columna por item en orden canonico.
func csvHeader() []string {
	header := []string{
		"profile_id",
		"scale",
		"persona_name",
		"persona_age",
		"persona_occupation",
		"persona_life_situation",
		"communication_style",
		"target_score",
		"actual_total_score",
	}
	for _, item := range madrs.Items() {
		header = append(header, string(item))
	}
	return header
}

// WriteCSV guarda las filas de un lote como CSV.
func WriteCSV(path string, rows []domain.BatchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ProfileID),
			row.Scale,
			row.PersonaName,
			strconv.Itoa(row.PersonaAge),
			row.PersonaOccupation,
			row.PersonaLifeSituation,
			row.CommunicationStyle,
			strconv.Itoa(row.TargetScore),
			strconv.Itoa(row.ActualTotalScore),
		}
		for _, item := range madrs.Items() {
			record = append(record, strconv.Itoa(row.Scores[item]))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row.ProfileID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON guarda las filas de un lote como JSON indentado.
func WriteJSON(path string, rows []domain.BatchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	return nil
}
