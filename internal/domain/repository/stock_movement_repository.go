package repository

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error)
	// UpdateNotes es la única corrección administrativa permitida sobre el libro.
	UpdateNotes(ctx context.Context, id, notes string) error
}
