package domain

import "github.com/shopspring/decimal"

// InventoryItemRecord representa a posição atual de estoque de um item
type InventoryItemRecord struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	MinStock  int
	UnitPrice decimal.Decimal
}

func (i InventoryItemRecord) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}
