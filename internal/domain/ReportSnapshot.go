package domain

import "time"

// MonthlySnapshot guarda o resultado consolidado de um mês para uma clínica
type MonthlySnapshot struct {
	ID        string        `json:"id"`
	ClinicID  string        `json:"clinic_id"`
	Period    string        `json:"period"` // Período no formato mm-yyyy
	Summary   *SummaryStats `json:"summary,omitempty"`
	Months    []MonthlyRow  `json:"months,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AvailablePeriods representa os períodos mensais com snapshot gravado
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato mm-yyyy
	Years   []string `json:"years"`
	Months  []string `json:"months"`
}
