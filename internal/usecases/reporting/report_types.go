package reporting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

// DefaultClinicalWindowDays é a janela usada pelo relatório clínico sem datas informadas
const DefaultClinicalWindowDays = 30

// ReportRequest são os parâmetros crus de uma requisição de relatório
type ReportRequest struct {
	ClinicID  string
	Type      string
	StartDate string // yyyy-mm-dd
	EndDate   string // yyyy-mm-dd
	GroupBy   string
}

// collection identifica uma das coleções que alimentam os relatórios
type collection uint16

const (
	collectionConsultations collection = 1 << iota
	collectionAppointments
	collectionPrescriptions
	collectionPets
	collectionGuardians
	collectionInventory
	collectionPayments
	collectionVeterinarians
)

func (c collection) has(other collection) bool {
	return c&other != 0
}

// requiredCollections define o que cada tipo de relatório precisa buscar
var requiredCollections = map[domain.ReportType]collection{
	domain.ReportSummary:       collectionConsultations | collectionAppointments | collectionPrescriptions | collectionPets,
	domain.ReportConsultations: collectionConsultations,
	domain.ReportPets:          collectionPets,
	domain.ReportAppointments:  collectionAppointments,
	domain.ReportPrescriptions: collectionPrescriptions,
	domain.ReportInventory:     collectionInventory,
	domain.ReportRevenue:       collectionPayments,
	domain.ReportVeterinarians: collectionVeterinarians | collectionAppointments | collectionConsultations,
	domain.ReportGuardians:     collectionGuardians | collectionAppointments,
}

// ResolveClinicalType aceita qualquer valor; tipos desconhecidos viram summary.
// O segundo retorno indica se houve fallback.
func ResolveClinicalType(value string) (domain.ReportType, bool) {
	reportType := domain.ReportType(strings.ToLower(strings.TrimSpace(value)))
	if reportType == "" {
		return domain.ReportSummary, false
	}
	if !slices.Contains(domain.ClinicalReportTypes, reportType) {
		return domain.ReportSummary, true
	}
	return reportType, false
}

// ParseGeneralType exige um dos tipos do relatório geral
func ParseGeneralType(value string) (domain.ReportType, error) {
	reportType := domain.ReportType(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains(domain.GeneralReportTypes, reportType) {
		return "", NewReportError(ErrInvalidReportType, apiErrors.ErrInvalidReportType,
			fmt.Sprintf("tipo %q não suportado, use um de %v", value, domain.GeneralReportTypes))
	}
	return reportType, nil
}

// ResolveGroupBy retorna month para valor vazio. Com strict desligado, valores inválidos
// também viram month; com strict ligado, são erro.
func ResolveGroupBy(value string, strict bool) (domain.GroupBy, error) {
	groupBy := domain.GroupBy(strings.ToLower(strings.TrimSpace(value)))
	if groupBy == "" {
		return domain.DefaultGroupBy, nil
	}
	if !groupBy.IsValid() {
		if strict {
			return "", NewReportError(ErrInvalidGroupBy, apiErrors.ErrInvalidGroupBy,
				fmt.Sprintf("agrupamento %q não suportado, use day, week, month ou year", value))
		}
		return domain.DefaultGroupBy, nil
	}
	return groupBy, nil
}

// ResolvePeriod interpreta as datas no fuso loc. Com requireDates desligado, datas
// ausentes são preenchidas com a janela padrão terminando em now.
func ResolvePeriod(startDate, endDate string, groupBy domain.GroupBy, requireDates bool, now time.Time, loc *time.Location) (domain.ReportPeriod, error) {
	if loc == nil {
		loc = time.UTC
	}

	start, err := parseLocalDate(startDate, loc)
	if err != nil {
		return domain.ReportPeriod{}, err
	}
	end, err := parseLocalDate(endDate, loc)
	if err != nil {
		return domain.ReportPeriod{}, err
	}

	if requireDates && (start == nil || end == nil) {
		return domain.ReportPeriod{}, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidPeriod,
			"startDate e endDate são obrigatórios")
	}

	today := now.In(loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	switch {
	case start == nil && end == nil:
		end = &today
		defaultStart := today.AddDate(0, 0, -DefaultClinicalWindowDays)
		start = &defaultStart
	case start == nil:
		defaultStart := end.AddDate(0, 0, -DefaultClinicalWindowDays)
		start = &defaultStart
	case end == nil:
		end = &today
	}

	if start.After(*end) {
		return domain.ReportPeriod{}, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidPeriod,
			"a data de início não pode ser posterior à data de fim")
	}

	return domain.ReportPeriod{
		Start:   *start,
		End:     *end,
		GroupBy: groupBy,
	}, nil
}

func parseLocalDate(value string, loc *time.Location) (*time.Time, error) {
	date, err := utils.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return nil, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidPeriod, err.Error())
	}
	if date == nil {
		return nil, nil
	}

	local := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return &local, nil
}

// periodInfo formata o período para o envelope de resposta
func periodInfo(period domain.ReportPeriod) domain.ReportPeriodInfo {
	return domain.ReportPeriodInfo{
		Start:   period.Start.Format(time.DateOnly),
		End:     period.End.Format(time.DateOnly),
		GroupBy: period.GroupBy,
	}
}

// build executa o construtor do tipo pedido sobre as coleções já carregadas
func (a *Aggregator) build(reportType domain.ReportType, records Records, period domain.ReportPeriod) any {
	switch reportType {
	case domain.ReportConsultations:
		return a.Consultations(records, period)
	case domain.ReportPets:
		return a.Pets(records, period)
	case domain.ReportAppointments:
		return a.Appointments(records, period)
	case domain.ReportPrescriptions:
		return a.Prescriptions(records, period)
	case domain.ReportInventory:
		return a.Inventory(records, period)
	case domain.ReportRevenue:
		return a.Revenue(records, period)
	case domain.ReportVeterinarians:
		return a.Veterinarians(records, period)
	case domain.ReportGuardians:
		return a.Guardians(records, period)
	default:
		return a.Summary(records, period)
	}
}
