package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

type InventoryCategoryStats struct {
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	MinStock int    `json:"minStock"`
}

type InventoryData struct {
	TotalItems    int                                 `json:"totalItems"`
	TotalQuantity int                                 `json:"totalQuantity"`
	StockValue    decimal.Decimal                     `json:"stockValue"`
	LowStockCount int                                 `json:"lowStockCount"`
	ByCategory    *OrderedMap[InventoryCategoryStats] `json:"byCategory"`
	LowStockItems []LowStockItem                      `json:"lowStockItems"`
}

type inventoryAcc struct {
	quantity int
	value    decimal.Decimal
}

func stockValue(item domain.InventoryItemRecord) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Inventory descreve a posição atual de estoque; o período não filtra itens
func (a *Aggregator) Inventory(records Records, _ domain.ReportPeriod) InventoryData {
	items := records.Inventory

	data := InventoryData{
		TotalItems:    len(items),
		StockValue:    decimal.Zero,
		LowStockItems: make([]LowStockItem, 0),
	}

	for _, item := range items {
		data.TotalQuantity += item.Quantity
		data.StockValue = data.StockValue.Add(stockValue(item))

		if item.IsLowStock() {
			data.LowStockCount++
			data.LowStockItems = append(data.LowStockItems, LowStockItem{
				ID:       item.ID,
				Name:     orPlaceholder(item.Name, PlaceholderUnknown),
				Category: orPlaceholder(item.Category, PlaceholderCategory),
				Quantity: item.Quantity,
				MinStock: item.MinStock,
			})
		}
	}

	byCategory := BreakdownBy(items,
		func(item domain.InventoryItemRecord) string { return orPlaceholder(item.Category, PlaceholderCategory) },
		func(acc *inventoryAcc, item domain.InventoryItemRecord) {
			acc.quantity += item.Quantity
			acc.value = acc.value.Add(stockValue(item))
		},
	)

	data.ByCategory = Derive(byCategory, func(category Category[inventoryAcc], _ int) InventoryCategoryStats {
		return InventoryCategoryStats{
			Count:    category.Count,
			Quantity: category.Acc.quantity,
			Value:    category.Acc.value,
		}
	})

	return data
}

type PaymentMethodStats struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type RevenueData struct {
	TotalRevenue    decimal.Decimal                 `json:"totalRevenue"`
	PaidCount       int                             `json:"paidCount"`
	AverageTicket   decimal.Decimal                 `json:"averageTicket"`
	ByPaymentMethod *OrderedMap[PaymentMethodStats] `json:"byPaymentMethod"`
	ByStatus        *OrderedMap[CategoryCount]      `json:"byStatus"`
	Timeline        []Bucket[domain.PaymentRecord]  `json:"timeline"`
}

// Revenue soma apenas pagamentos confirmados; byStatus considera todos
func (a *Aggregator) Revenue(records Records, period domain.ReportPeriod) RevenueData {
	paid := make([]domain.PaymentRecord, 0, len(records.Payments))
	total := decimal.Zero
	for _, payment := range records.Payments {
		if payment.Status == domain.PaymentPaid {
			paid = append(paid, payment)
			total = total.Add(payment.Amount)
		}
	}

	byMethod := BreakdownBy(paid,
		func(p domain.PaymentRecord) string { return orPlaceholder(p.Method, PlaceholderUnknown) },
		func(sum *decimal.Decimal, p domain.PaymentRecord) { *sum = sum.Add(p.Amount) },
	)

	return RevenueData{
		TotalRevenue:  total,
		PaidCount:     len(paid),
		AverageTicket: averageTicket(total, len(paid)),
		ByPaymentMethod: Derive(byMethod, func(category Category[decimal.Decimal], _ int) PaymentMethodStats {
			return PaymentMethodStats{Count: category.Count, Total: category.Acc}
		}),
		ByStatus: CountBy(records.Payments, func(p domain.PaymentRecord) string {
			return orPlaceholder(string(p.Status), PlaceholderUnknown)
		}),
		Timeline: BucketByPeriod(a.calendar, paid,
			func(p domain.PaymentRecord) time.Time { return p.PaidAt },
			period.GroupBy,
			func(p domain.PaymentRecord) *decimal.Decimal { return &p.Amount },
		),
	}
}

type VeterinarianPerformance struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Role                  string          `json:"role"`
	Appointments          int             `json:"appointments"`
	CompletedAppointments int             `json:"completedAppointments"`
	Consultations         int             `json:"consultations"`
	Revenue               decimal.Decimal `json:"revenue"`
	CompletionRate        int             `json:"completionRate"`
}

type VeterinariansData struct {
	Total       int                       `json:"total"`
	Performance []VeterinarianPerformance `json:"performance"`
}

// Veterinarians parte da equipe cadastrada, para que veterinários sem atividade
// apareçam zerados. Registros de veterinários fora da equipe entram no fim da lista.
func (a *Aggregator) Veterinarians(records Records, _ domain.ReportPeriod) VeterinariansData {
	performance := NewOrderedMap[*VeterinarianPerformance]()

	lookup := func(id, name, role string) *VeterinarianPerformance {
		key := id
		if key == "" {
			key = orPlaceholder(name, PlaceholderUnknown)
		}
		if vet, ok := performance.Get(key); ok {
			return vet
		}
		vet := &VeterinarianPerformance{
			ID:      id,
			Name:    orPlaceholder(name, PlaceholderUnknown),
			Role:    orPlaceholder(role, PlaceholderUnknown),
			Revenue: decimal.Zero,
		}
		performance.Set(key, vet)
		return vet
	}

	for _, vet := range records.Veterinarians {
		lookup(vet.ID, vet.Name, vet.Role)
	}

	for _, appointment := range records.Appointments {
		vet := lookup(appointment.VeterinarianID, appointment.VeterinarianName, appointment.VeterinarianRole)
		vet.Appointments++
		if appointment.Status == domain.AppointmentCompleted {
			vet.CompletedAppointments++
		}
	}

	for _, consultation := range records.Consultations {
		vet := lookup(consultation.VeterinarianID, consultation.VeterinarianName, "")
		vet.Consultations++
		if consultation.Value != nil {
			vet.Revenue = vet.Revenue.Add(*consultation.Value)
		}
	}

	result := make([]VeterinarianPerformance, 0, performance.Len())
	performance.Each(func(_ string, vet *VeterinarianPerformance) {
		vet.CompletionRate = utils.Percentage(vet.CompletedAppointments, vet.Appointments)
		result = append(result, *vet)
	})

	return VeterinariansData{
		Total:       len(result),
		Performance: result,
	}
}

type GuardianActivity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Appointments int    `json:"appointments"`
}

type GuardiansData struct {
	TotalGuardians         int                             `json:"totalGuardians"`
	NewGuardians           int                             `json:"newGuardians"`
	AveragePetsPerGuardian float64                         `json:"averagePetsPerGuardian"`
	TopGuardians           []GuardianActivity              `json:"topGuardians"`
	Timeline               []Bucket[domain.GuardianRecord] `json:"timeline"`
}

type guardianAcc struct {
	id    string
	name  string
	email string
}

// Guardians recebe os tutores da clínica; novos tutores são os cadastrados dentro do período
func (a *Aggregator) Guardians(records Records, period domain.ReportPeriod) GuardiansData {
	guardians := records.Guardians
	end := period.QueryEnd()

	newGuardians := make([]domain.GuardianRecord, 0)
	totalPets := 0
	for _, guardian := range guardians {
		totalPets += guardian.PetsCount
		if !guardian.CreatedAt.Before(period.Start) && guardian.CreatedAt.Before(end) {
			newGuardians = append(newGuardians, guardian)
		}
	}

	var averagePets float64
	if len(guardians) > 0 {
		averagePets = utils.RoundWithTwoDecimalPlace(float64(totalPets) / float64(len(guardians)))
	}

	byGuardian := BreakdownBy(records.Appointments,
		func(ap domain.AppointmentRecord) string {
			if ap.GuardianID != "" {
				return ap.GuardianID
			}
			return orPlaceholder(ap.GuardianName, PlaceholderUnknown)
		},
		func(acc *guardianAcc, ap domain.AppointmentRecord) {
			if acc.name == "" {
				acc.id = ap.GuardianID
				acc.name = orPlaceholder(ap.GuardianName, PlaceholderUnknown)
				acc.email = ap.GuardianEmail
			}
		},
	)

	top := make([]GuardianActivity, 0, topListSize)
	for _, category := range byGuardian.Top(topListSize) {
		top = append(top, GuardianActivity{
			ID:           category.Acc.id,
			Name:         category.Acc.name,
			Email:        category.Acc.email,
			Appointments: category.Count,
		})
	}

	return GuardiansData{
		TotalGuardians:         len(guardians),
		NewGuardians:           len(newGuardians),
		AveragePetsPerGuardian: averagePets,
		TopGuardians:           top,
		Timeline: BucketByPeriod(a.calendar, newGuardians,
			func(g domain.GuardianRecord) time.Time { return g.CreatedAt },
			period.GroupBy,
			nil,
		),
	}
}
