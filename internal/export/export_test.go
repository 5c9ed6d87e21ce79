package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
)

func sampleRows() []domain.BatchRow {
	scores := make(madrs.Profile)
	for i, item := range madrs.Items() {
		scores[item] = i % 7
	}
	return []domain.BatchRow{
		{
			ProfileID:            0,
			Scale:                "madrs",
			PersonaName:          "Marta Alvarez",
			PersonaAge:           34,
			PersonaOccupation:    "school teacher",
			PersonaLifeSituation: "recently divorced, two kids",
			CommunicationStyle:   "open",
			TargetScore:          scores.Total(),
			ActualTotalScore:     scores.Total(),
			Scores:               scores,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles_madrs.csv")
	rows := sampleRows()
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	wantCols := 9 + len(madrs.Items())
	if len(records[0]) != wantCols {
		t.Fatalf("header has %d columns, want %d", len(records[0]), wantCols)
	}
	if records[0][9] != string(madrs.ItemReportedSadness) {
		t.Fatalf("first item column = %q, want %q", records[0][9], madrs.ItemReportedSadness)
	}
	if records[1][1] != "madrs" {
		t.Fatalf("scale column = %q, want madrs", records[1][1])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles_madrs.json")
	rows := sampleRows()
	if err := WriteJSON(path, rows); err != nil {
		t.Fatalf("write json: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded []domain.BatchRow
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d rows, want 1", len(decoded))
	}
	if decoded[0].Scores[madrs.ItemApparentSadness] != rows[0].Scores[madrs.ItemApparentSadness] {
		t.Fatalf("scores did not round trip: %+v", decoded[0].Scores)
	}
}
