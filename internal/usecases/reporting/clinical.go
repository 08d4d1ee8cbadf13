package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

const topListSize = 10

// Aggregator monta os dados de cada tipo de relatório a partir de coleções já carregadas.
// Não faz I/O e não altera os registros recebidos.
type Aggregator struct {
	calendar Calendar
}

func NewAggregator(loc *time.Location) *Aggregator {
	return &Aggregator{calendar: NewCalendar(loc)}
}

type SummaryData struct {
	Summary         domain.SummaryStats `json:"summary"`
	MonthlyAnalysis []domain.MonthlyRow `json:"monthlyAnalysis"`
}

func (a *Aggregator) Summary(records Records, period domain.ReportPeriod) SummaryData {
	return SummaryData{
		Summary:         Summarize(records, period),
		MonthlyAnalysis: a.calendar.MonthlySeries(records, period),
	}
}

type VeterinarianRevenue struct {
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Count     int    `json:"count"`
}

type ConsultationsData struct {
	Total                int                                 `json:"total"`
	TotalRevenue         decimal.Decimal                     `json:"totalRevenue"`
	AverageTicket        decimal.Decimal                     `json:"averageTicket"`
	ByStatus             *OrderedMap[CategoryCount]          `json:"byStatus"`
	VeterinarianAnalysis *OrderedMap[VeterinarianRevenue]    `json:"veterinarianAnalysis"`
	TopDiagnoses         []DiagnosisCount                    `json:"topDiagnoses"`
	Timeline             []Bucket[domain.ConsultationRecord] `json:"timeline"`
}

type revenueAcc struct {
	revenue decimal.Decimal
	valued  int
}

func (acc *revenueAcc) add(value *decimal.Decimal) {
	if value == nil {
		return
	}
	acc.revenue = acc.revenue.Add(*value)
	acc.valued++
}

// averageTicket divide a receita pelo número de registros com valor, em duas casas
func averageTicket(revenue decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func (a *Aggregator) Consultations(records Records, period domain.ReportPeriod) ConsultationsData {
	consultations := records.Consultations

	var totals revenueAcc
	for _, consultation := range consultations {
		totals.add(consultation.Value)
	}

	byVeterinarian := BreakdownBy(consultations,
		func(c domain.ConsultationRecord) string { return orPlaceholder(c.VeterinarianName, PlaceholderUnknown) },
		func(acc *revenueAcc, c domain.ConsultationRecord) { acc.add(c.Value) },
	)

	diagnoses := BreakdownBy[domain.ConsultationRecord, struct{}](consultations,
		func(c domain.ConsultationRecord) string { return orPlaceholder(c.Diagnosis, PlaceholderUnknown) },
		nil,
	)

	topDiagnoses := make([]DiagnosisCount, 0, topListSize)
	for _, category := range diagnoses.Top(topListSize) {
		topDiagnoses = append(topDiagnoses, DiagnosisCount{Diagnosis: category.Key, Count: category.Count})
	}

	return ConsultationsData{
		Total:         len(consultations),
		TotalRevenue:  totals.revenue,
		AverageTicket: averageTicket(totals.revenue, totals.valued),
		ByStatus: CountBy(consultations, func(c domain.ConsultationRecord) string {
			return orPlaceholder(c.Status, PlaceholderUnknown)
		}),
		VeterinarianAnalysis: Derive(byVeterinarian, func(category Category[revenueAcc], total int) VeterinarianRevenue {
			return VeterinarianRevenue{
				Count:      category.Count,
				Percentage: utils.Percentage(category.Count, total),
				Revenue:    category.Acc.revenue,
			}
		}),
		TopDiagnoses: topDiagnoses,
		Timeline: BucketByPeriod(a.calendar, consultations,
			func(c domain.ConsultationRecord) time.Time { return c.CreatedAt },
			period.GroupBy,
			func(c domain.ConsultationRecord) *decimal.Decimal { return c.Value },
		),
	}
}

type SpeciesStats struct {
	Count              int     `json:"count"`
	NeuteredCount      int     `json:"neuteredCount"`
	NeuteredPercentage int     `json:"neuteredPercentage"`
	AverageAge         float64 `json:"averageAge"`
}

type PetsData struct {
	Total              int                        `json:"total"`
	NeuteredCount      int                        `json:"neuteredCount"`
	NeuteredPercentage int                        `json:"neuteredPercentage"`
	SpeciesAnalysis    *OrderedMap[SpeciesStats]  `json:"speciesAnalysis"`
	BreedAnalysis      *OrderedMap[CategoryCount] `json:"breedAnalysis"`
	Timeline           []Bucket[domain.PetRecord] `json:"timeline"`
}

type speciesAcc struct {
	neutered      int
	withBirthDate int
	totalAgeYears int
}

// Pets agrupa os pets por espécie e raça. A idade é calculada na data final do período.
func (a *Aggregator) Pets(records Records, period domain.ReportPeriod) PetsData {
	pets := records.Pets
	reference := period.End

	bySpecies := BreakdownBy(pets,
		func(p domain.PetRecord) string { return orPlaceholder(p.Species, PlaceholderUnknown) },
		func(acc *speciesAcc, p domain.PetRecord) {
			if p.IsNeutered {
				acc.neutered++
			}
			if p.BirthDate != nil {
				acc.withBirthDate++
				acc.totalAgeYears += AgeInYears(*p.BirthDate, reference)
			}
		},
	)

	neutered := 0
	for _, pet := range pets {
		if pet.IsNeutered {
			neutered++
		}
	}

	return PetsData{
		Total:              len(pets),
		NeuteredCount:      neutered,
		NeuteredPercentage: utils.Percentage(neutered, len(pets)),
		SpeciesAnalysis: Derive(bySpecies, func(category Category[speciesAcc], _ int) SpeciesStats {
			stats := SpeciesStats{
				Count:              category.Count,
				NeuteredCount:      category.Acc.neutered,
				NeuteredPercentage: utils.Percentage(category.Acc.neutered, category.Count),
			}
			if category.Acc.withBirthDate > 0 {
				stats.AverageAge = utils.RoundWithTwoDecimalPlace(
					float64(category.Acc.totalAgeYears) / float64(category.Acc.withBirthDate),
				)
			}
			return stats
		}),
		BreedAnalysis: CountBy(pets, func(p domain.PetRecord) string {
			return orPlaceholder(p.Breed, PlaceholderUnknown)
		}),
		Timeline: BucketByPeriod(a.calendar, pets,
			func(p domain.PetRecord) time.Time { return p.CreatedAt },
			period.GroupBy,
			nil,
		),
	}
}

type AppointmentBucket struct {
	Period   string                     `json:"period"`
	Count    int                        `json:"count"`
	ByStatus *OrderedMap[CategoryCount] `json:"byStatus"`
}

type VeterinarianAppointments struct {
	Count      int `json:"count"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Percentage int `json:"percentage"`
}

type AppointmentsData struct {
	Total                int                                   `json:"total"`
	CompletionRate       int                                   `json:"completionRate"`
	CancellationRate     int                                   `json:"cancellationRate"`
	ByStatus             *OrderedMap[CategoryCount]            `json:"byStatus"`
	VeterinarianAnalysis *OrderedMap[VeterinarianAppointments] `json:"veterinarianAnalysis"`
	BySpecies            *OrderedMap[CategoryCount]            `json:"bySpecies"`
	Timeline             []AppointmentBucket                   `json:"timeline"`
}

type statusAcc struct {
	completed int
	cancelled int
}

func (acc *statusAcc) add(status domain.AppointmentStatus) {
	switch status {
	case domain.AppointmentCompleted:
		acc.completed++
	case domain.AppointmentCancelled:
		acc.cancelled++
	}
}

func appointmentStatusKey(a domain.AppointmentRecord) string {
	return orPlaceholder(string(a.Status), PlaceholderUnknown)
}

func (a *Aggregator) Appointments(records Records, period domain.ReportPeriod) AppointmentsData {
	appointments := records.Appointments

	var totals statusAcc
	for _, appointment := range appointments {
		totals.add(appointment.Status)
	}

	byVeterinarian := BreakdownBy(appointments,
		func(ap domain.AppointmentRecord) string {
			return orPlaceholder(ap.VeterinarianName, PlaceholderUnknown)
		},
		func(acc *statusAcc, ap domain.AppointmentRecord) { acc.add(ap.Status) },
	)

	buckets := BucketByPeriod(a.calendar, appointments,
		func(ap domain.AppointmentRecord) time.Time { return ap.Date },
		period.GroupBy,
		nil,
	)

	timeline := make([]AppointmentBucket, 0, len(buckets))
	for _, bucket := range buckets {
		timeline = append(timeline, AppointmentBucket{
			Period:   bucket.Period,
			Count:    bucket.Count,
			ByStatus: CountBy(bucket.Records, appointmentStatusKey),
		})
	}

	return AppointmentsData{
		Total:            len(appointments),
		CompletionRate:   utils.Percentage(totals.completed, len(appointments)),
		CancellationRate: utils.Percentage(totals.cancelled, len(appointments)),
		ByStatus:         CountBy(appointments, appointmentStatusKey),
		VeterinarianAnalysis: Derive(byVeterinarian, func(category Category[statusAcc], total int) VeterinarianAppointments {
			return VeterinarianAppointments{
				Count:      category.Count,
				Completed:  category.Acc.completed,
				Cancelled:  category.Acc.cancelled,
				Percentage: utils.Percentage(category.Count, total),
			}
		}),
		BySpecies: CountBy(appointments, func(ap domain.AppointmentRecord) string {
			return orPlaceholder(ap.PetSpecies, PlaceholderUnknown)
		}),
		Timeline: timeline,
	}
}

type ItemCategoryStats struct {
	Items    int `json:"items"`
	Quantity int `json:"quantity"`
}

type PrescriptionsData struct {
	Total                int                                 `json:"total"`
	TotalItems           int                                 `json:"totalItems"`
	ByStatus             *OrderedMap[CategoryCount]          `json:"byStatus"`
	ItemsByCategory      *OrderedMap[ItemCategoryStats]      `json:"itemsByCategory"`
	VeterinarianAnalysis *OrderedMap[CategoryCount]          `json:"veterinarianAnalysis"`
	Timeline             []Bucket[domain.PrescriptionRecord] `json:"timeline"`
}

func (a *Aggregator) Prescriptions(records Records, period domain.ReportPeriod) PrescriptionsData {
	prescriptions := records.Prescriptions

	items := make([]domain.PrescriptionItem, 0)
	for _, prescription := range prescriptions {
		items = append(items, prescription.Items...)
	}

	byCategory := BreakdownBy(items,
		func(item domain.PrescriptionItem) string { return orPlaceholder(item.Category, PlaceholderCategory) },
		func(quantity *int, item domain.PrescriptionItem) { *quantity += item.Quantity },
	)

	return PrescriptionsData{
		Total:      len(prescriptions),
		TotalItems: len(items),
		ByStatus: CountBy(prescriptions, func(p domain.PrescriptionRecord) string {
			return orPlaceholder(p.Status, PlaceholderUnknown)
		}),
		ItemsByCategory: Derive(byCategory, func(category Category[int], _ int) ItemCategoryStats {
			return ItemCategoryStats{Items: category.Count, Quantity: category.Acc}
		}),
		VeterinarianAnalysis: CountBy(prescriptions, func(p domain.PrescriptionRecord) string {
			return orPlaceholder(p.VeterinarianName, PlaceholderUnknown)
		}),
		Timeline: BucketByPeriod(a.calendar, prescriptions,
			func(p domain.PrescriptionRecord) time.Time { return p.StartDate },
			period.GroupBy,
			nil,
		),
	}
}
