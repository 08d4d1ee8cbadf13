package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	inventoryItemsTable = "inventory_items i"
)

//go:generate mockgen -source=inventory.go -destination=mocks/inventory_mock.go -package=mocks

type InventoryRepository interface {
	ListByClinic(ctx context.Context, clinicID string) ([]domain.InventoryItemRecord, error)
}

type inventoryRepository struct {
	conn postgres.Queryer
}

func NewInventoryRepository(conn postgres.Queryer) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func (r *inventoryRepository) ListByClinic(ctx context.Context, clinicID string) ([]domain.InventoryItemRecord, error) {
	query, args, err := psql.
		Select(
			"i.id",
			"COALESCE(i.name, '')",
			"COALESCE(i.category, '')",
			"i.quantity",
			"COALESCE(i.min_stock, 0)",
			"COALESCE(i.unit_price, 0)",
		).
		From(inventoryItemsTable).
		Where(squirrel.Eq{"i.clinic_id": clinicID, "i.active": true}).
		OrderBy("i.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens de estoque: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItemRecord, 0)
	for rows.Next() {
		var item domain.InventoryItemRecord
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Quantity,
			&item.MinStock,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item de estoque: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}
