package domain

// ReportType identifica qual combinação de agregações um relatório executa
type ReportType string

const (
	ReportSummary       ReportType = "summary"
	ReportConsultations ReportType = "consultations"
	ReportPets          ReportType = "pets"
	ReportAppointments  ReportType = "appointments"
	ReportPrescriptions ReportType = "prescriptions"
	ReportInventory     ReportType = "inventory"
	ReportRevenue       ReportType = "revenue"
	ReportVeterinarians ReportType = "veterinarians"
	ReportGuardians     ReportType = "guardians"
)

// ClinicalReportTypes são os tipos aceitos pelo relatório clínico
var ClinicalReportTypes = []ReportType{
	ReportSummary,
	ReportConsultations,
	ReportPets,
	ReportAppointments,
	ReportPrescriptions,
}

// GeneralReportTypes são os tipos aceitos pelo relatório geral
var GeneralReportTypes = []ReportType{
	ReportAppointments,
	ReportConsultations,
	ReportInventory,
	ReportRevenue,
	ReportPets,
	ReportVeterinarians,
	ReportGuardians,
}

// Report é o envelope devolvido pela API de relatórios
type Report struct {
	Type   ReportType       `json:"type"`
	Period ReportPeriodInfo `json:"period"`
	Data   any              `json:"data"`
}

type ReportPeriodInfo struct {
	Start   string  `json:"start"` // yyyy-mm-dd
	End     string  `json:"end"`   // yyyy-mm-dd
	GroupBy GroupBy `json:"groupBy"`
}

// SummaryStats são as contagens gerais de um período
type SummaryStats struct {
	TotalConsultations         int     `json:"totalConsultations"`
	TotalAppointments          int     `json:"totalAppointments"`
	TotalPrescriptions         int     `json:"totalPrescriptions"`
	TotalPets                  int     `json:"totalPets"`
	Days                       int     `json:"days"`
	AveragePerDay              float64 `json:"averagePerDay"`
	AverageConsultationsPerDay float64 `json:"averageConsultationsPerDay"`
}

// MonthlyRow é uma linha da série mensal, presente mesmo sem atividade no mês
type MonthlyRow struct {
	Month         string `json:"month"` // yyyy-mm
	Consultations int    `json:"consultations"`
	Appointments  int    `json:"appointments"`
	Prescriptions int    `json:"prescriptions"`
}
