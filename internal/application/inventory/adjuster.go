package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-orders-api/internal/domain/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// Adjustment resultado de aplicar un delta: foto posterior del artículo y cantidad previa.
type Adjustment struct {
	Item     *entity.InventoryItem
	Before   int
	Delta    int
	LowStock bool // Item.Quantity < Item.LowStockThreshold tras el ajuste
}

// Adjuster aplica deltas firmados sobre un artículo dentro de la transacción del caller.
// No hace Commit ni Rollback: eso es responsabilidad de quien abrió la transacción.
type Adjuster struct{}

// NewAdjuster construye el ajustador.
func NewAdjuster() *Adjuster {
	return &Adjuster{}
}

// Apply bloquea la fila, verifica que current+delta >= 0 (ErrStockUnderflow si no) y persiste el delta.
// itemRepo debe estar atado a la transacción en curso.
func (a *Adjuster) Apply(ctx context.Context, itemRepo repository.InventoryItemRepository, itemID string, delta int) (*Adjustment, error) {
	current, err := itemRepo.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, itemID)
	}
	if _, err := domaininv.NextQuantity(current.Quantity, delta); err != nil {
		return nil, err
	}
	updated, err := itemRepo.ApplyDelta(ctx, itemID, delta)
	if err != nil {
		return nil, err
	}
	return &Adjustment{
		Item:     updated,
		Before:   current.Quantity,
		Delta:    delta,
		LowStock: updated.IsLowStock(),
	}, nil
}
