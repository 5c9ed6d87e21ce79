package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"vp-madrs/internal/madrs"
)

// StoredProfile es un perfil generado listo para persistir. El embedding es
// el vector de 10 puntajes, usado para busqueda de perfiles similares.
type StoredProfile struct {
	ID          uuid.UUID       `json:"id"`
	TargetScore int             `json:"target_score"`
	ActualTotal int             `json:"actual_total_score"`
	Scores      madrs.Profile   `json:"scores"`
	Embedding   pgvector.Vector `json:"-"`
	Seed        int64           `json:"seed"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Persona describe al paciente virtual asociado a un perfil de lote.
type Persona struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Occupation    string `json:"occupation"`
	LifeSituation string `json:"life_situation"`
}

// BatchRow es una fila de un lote generado, con el mismo esquema de columnas
// que los exports historicos.
type BatchRow struct {
	ProfileID            int           `json:"profile_id"`
	Scale                string        `json:"scale"`
	PersonaName          string        `json:"persona_name"`
	PersonaAge           int           `json:"persona_age"`
	PersonaOccupation    string        `json:"persona_occupation"`
	PersonaLifeSituation string        `json:"persona_life_situation"`
	CommunicationStyle   string        `json:"communication_style"`
	TargetScore          int           `json:"target_score"`
	ActualTotalScore     int           `json:"actual_total_score"`
	Scores               madrs.Profile `json:"scores"`
}
