package orders

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y pedidos.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockAdjuster aplica un delta firmado sobre un artículo usando el repositorio del caller (misma transacción).
// Lo implementa *inventory.Adjuster.
type StockAdjuster interface {
	Apply(ctx context.Context, itemRepo repository.InventoryItemRepository, itemID string, delta int) (*inventory.Adjustment, error)
}

// Notifier recibe notificaciones fire-and-forget.
type Notifier interface {
	Notify(kind entity.NotificationKind, payload any)
}
