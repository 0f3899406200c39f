package repository

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// ItemFilter filtros opcionales para listar el catálogo.
type ItemFilter struct {
	Category entity.Category // vacío = todas
	Limit    int
	Offset   int
}

// InventoryItemRepository define el puerto de persistencia para artículos del inventario.
// Quantity nunca se sobrescribe: solo cambia con ApplyDelta dentro de una transacción.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, name string) (*entity.InventoryItem, error)
	// GetForUpdate obtiene el artículo y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// ApplyDelta suma delta a quantity y devuelve la foto posterior al ajuste.
	ApplyDelta(ctx context.Context, id string, delta int) (*entity.InventoryItem, error)
	// Update modifica los datos de catálogo (no quantity).
	Update(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
