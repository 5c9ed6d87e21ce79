package service

import "vp-madrs/internal/domain"

// Personas fijas para los lotes de pacientes virtuales. El perfil numerico
// no depende de la persona; solo acompañan las filas exportadas.
var personas = []domain.Persona{
	{Name: "Marta Alvarez", Age: 34, Occupation: "school teacher", LifeSituation: "recently divorced, two kids"},
	{Name: "Jorge Paredes", Age: 52, Occupation: "truck driver", LifeSituation: "chronic back pain, living alone"},
	{Name: "Lucia Ferrer", Age: 27, Occupation: "graduate student", LifeSituation: "thesis deadline, far from family"},
	{Name: "Andres Molina", Age: 45, Occupation: "accountant", LifeSituation: "recently unemployed, mortgage stress"},
	{Name: "Carmen Solis", Age: 68, Occupation: "retired nurse", LifeSituation: "widowed last year, limited mobility"},
	{Name: "Pablo Quiroga", Age: 19, Occupation: "apprentice electrician", LifeSituation: "first job, moved to a new city"},
	{Name: "Ines Castaneda", Age: 41, Occupation: "restaurant owner", LifeSituation: "business struggling after relocation"},
	{Name: "Diego Herrera", Age: 58, Occupation: "high school principal", LifeSituation: "caring for a sick parent"},
}

// Estilos de comunicacion que matizan la entrevista simulada.
var communicationStyles = []string{
	"open",
	"guarded",
	"terse",
	"rambling",
	"minimizing",
	"dramatic",
}
