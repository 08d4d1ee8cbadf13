package reporting

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

const (
	PlaceholderCategory = "Sem categoria"
	PlaceholderUnknown  = "Não informado"

	daysPerYear = 365
)

// Records agrupa as coleções já filtradas por clínica e período que alimentam um relatório
type Records struct {
	Consultations []domain.ConsultationRecord
	Appointments  []domain.AppointmentRecord
	Prescriptions []domain.PrescriptionRecord
	Pets          []domain.PetRecord
	Guardians     []domain.GuardianRecord
	Inventory     []domain.InventoryItemRecord
	Payments      []domain.PaymentRecord
	Veterinarians []domain.VeterinarianRecord
}

// Category acumula a contagem de uma chave e os totais extras do acumulador
type Category[A any] struct {
	Key   string
	Count int
	Acc   A
}

// Breakdown é o resultado de um agrupamento categórico, na ordem em que as chaves apareceram
type Breakdown[A any] struct {
	categories *OrderedMap[*Category[A]]
	total      int
}

// BreakdownBy agrupa os registros pela chave em uma única passada. A primeira ocorrência
// de uma chave cria a categoria com contagem 1; as seguintes incrementam. O acumulador,
// quando informado, é chamado junto com cada incremento.
func BreakdownBy[T any, A any](records []T, keyOf func(T) string, accumulate func(acc *A, record T)) Breakdown[A] {
	categories := NewOrderedMap[*Category[A]]()

	for _, record := range records {
		key := keyOf(record)

		category, exists := categories.Get(key)
		if !exists {
			category = &Category[A]{Key: key}
			categories.Set(key, category)
		}

		category.Count++
		if accumulate != nil {
			accumulate(&category.Acc, record)
		}
	}

	return Breakdown[A]{
		categories: categories,
		total:      len(records),
	}
}

// Total é o número de registros agrupados, igual à soma das contagens das categorias
func (b Breakdown[A]) Total() int {
	return b.total
}

func (b Breakdown[A]) Len() int {
	return b.categories.Len()
}

func (b Breakdown[A]) Get(key string) (Category[A], bool) {
	if b.categories == nil {
		return Category[A]{}, false
	}
	category, ok := b.categories.Get(key)
	if !ok {
		return Category[A]{}, false
	}
	return *category, true
}

// Categories retorna cópias das categorias na ordem de primeira ocorrência
func (b Breakdown[A]) Categories() []Category[A] {
	categories := make([]Category[A], 0, b.Len())
	b.categories.Each(func(_ string, category *Category[A]) {
		categories = append(categories, *category)
	})
	return categories
}

// Top retorna as n categorias com maior contagem; empates mantêm a ordem de ocorrência
func (b Breakdown[A]) Top(n int) []Category[A] {
	categories := b.Categories()
	slices.SortStableFunc(categories, func(x, y Category[A]) int {
		return y.Count - x.Count
	})
	if n >= 0 && len(categories) > n {
		categories = categories[:n]
	}
	return categories
}

// Derive projeta cada categoria em um valor de saída, calculado a partir dos totais
// acumulados, preservando a ordem
func Derive[A any, R any](b Breakdown[A], project func(category Category[A], total int) R) *OrderedMap[R] {
	derived := NewOrderedMap[R]()
	b.categories.Each(func(key string, category *Category[A]) {
		derived.Set(key, project(*category, b.total))
	})
	return derived
}

// CategoryCount é a saída padrão de um agrupamento sem campos extras
type CategoryCount struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// CountBy agrupa os registros pela chave e devolve contagem e porcentagem do total
func CountBy[T any](records []T, keyOf func(T) string) *OrderedMap[CategoryCount] {
	breakdown := BreakdownBy[T, struct{}](records, keyOf, nil)
	return Derive(breakdown, func(category Category[struct{}], total int) CategoryCount {
		return CategoryCount{
			Count:      category.Count,
			Percentage: utils.Percentage(category.Count, total),
		}
	})
}

// DaySpan é o número de dias do período arredondado para cima, no mínimo 1.
// Conta dias de calendário, sem efeito de horário de verão.
func DaySpan(period domain.ReportPeriod) int {
	days := int(math.Ceil(wallClock(period.End).Sub(wallClock(period.Start)).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// wallClock reinterpreta a data e hora locais de t como UTC
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	hour, minute, sec := t.Clock()
	return time.Date(y, m, d, hour, minute, sec, t.Nanosecond(), time.UTC)
}

// AgeInYears usa divisão inteira dos dias por 365, sem ajuste de ano bissexto
func AgeInYears(birthDate, reference time.Time) int {
	days := int(reference.Sub(birthDate).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return days / daysPerYear
}

// Summarize calcula os totais do período. Coleções vazias resultam em zeros.
func Summarize(records Records, period domain.ReportPeriod) domain.SummaryStats {
	days := DaySpan(period)

	return domain.SummaryStats{
		TotalConsultations:         len(records.Consultations),
		TotalAppointments:          len(records.Appointments),
		TotalPrescriptions:         len(records.Prescriptions),
		TotalPets:                  len(records.Pets),
		Days:                       days,
		AveragePerDay:              utils.RoundWithTwoDecimalPlace(float64(len(records.Appointments)) / float64(days)),
		AverageConsultationsPerDay: utils.RoundWithTwoDecimalPlace(float64(len(records.Consultations)) / float64(days)),
	}
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
