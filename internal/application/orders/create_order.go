package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-orders-api/internal/domain/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// CreateOrderUseCase crea un pedido y descuenta el inventario de todas sus líneas en una sola transacción.
// Las notificaciones (pedido grande, sin stock, stock bajo) se emiten solo después del Commit.
type CreateOrderUseCase struct {
	txRunner OrderTxRunner
	builder  *Builder
	adjuster StockAdjuster
	notifier Notifier
	log      zerolog.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	builder *Builder,
	adjuster StockAdjuster,
	notifier Notifier,
	log zerolog.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner: txRunner,
		builder:  builder,
		adjuster: adjuster,
		notifier: notifier,
		log:      log.With().Str("component", "orders").Logger(),
	}
}

// reservation resultado de descontar una línea: foto del artículo tras el ajuste.
type reservation struct {
	line       entity.OrderItem
	adjustment *inventory.Adjustment
}

// CreateOrder: Resolve → Reserve → Persist → Commit → Notify.
// actorID es el usuario autenticado; queda como actor de los movimientos Sale del libro.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	lines := make([]LineRequest, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if actorID == "" {
		actorID = in.CustomerID
	}

	var order *entity.Order
	var reserved []reservation
	err := uc.txRunner.RunOrder(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		reserved = reserved[:0]

		// 1) Resolve: productos y precios; si alguno no existe se aborta sin tocar stock
		o, _, err := uc.builder.Build(ctx, itemRepo, in.CustomerID, lines)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		o.ID = uuid.New().String()
		o.CreatedAt = now
		o.UpdatedAt = now

		// 2) Reserve: bloqueo en orden ascendente de producto para evitar deadlocks entre pedidos concurrentes
		for _, idx := range lockOrder(o.Items) {
			line := o.Items[idx]
			current, err := itemRepo.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			if err := domaininv.ValidateMovement(current.Quantity, entity.MovementSale, -line.Quantity); err != nil {
				return err
			}
			adj, err := uc.adjuster.Apply(ctx, itemRepo, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			if err := movRepo.Create(ctx, &entity.StockMovement{
				ID:             uuid.New().String(),
				ItemID:         line.ProductID,
				Type:           entity.MovementSale,
				QuantityChange: -line.Quantity,
				UserID:         actorID,
				Timestamp:      now,
				Notes:          "pedido " + o.ID,
			}); err != nil {
				return err
			}
			reserved = append(reserved, reservation{line: line, adjustment: adj})
		}

		// 3) Persist: Pending, paid=false, totales derivados por el builder
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("customer_id", in.CustomerID).Msg("pedido abortado")
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("customer_id", order.CustomerID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Bool("important", order.ImportantTransaction).
		Msg("pedido creado")

	uc.notifyCommitted(order, reserved, actorID)
	return order, nil
}

// notifyCommitted decide las notificaciones leyendo las fotos ya confirmadas. Nunca falla.
func (uc *CreateOrderUseCase) notifyCommitted(order *entity.Order, reserved []reservation, actorID string) {
	if order.ImportantTransaction {
		uc.notifier.Notify(entity.NotifyLargeOrder, entity.LargeOrderAlert{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			TotalAmount: order.TotalAmount,
			Threshold:   uc.builder.LargeOrderThreshold(),
		})
	}
	for _, r := range reserved {
		item := r.adjustment.Item
		if item.Quantity < r.line.Quantity {
			uc.notifier.Notify(entity.NotifyOutOfStock, entity.OutOfStockAlert{
				OrderID:           order.ID,
				ItemID:            item.ID,
				ItemName:          item.Name,
				Category:          item.Category,
				AuthorID:          item.AuthorID,
				RequestedQuantity: r.line.Quantity,
				Remaining:         item.Quantity,
			})
		}
		if r.adjustment.LowStock {
			uc.notifier.Notify(entity.NotifyLowStock, inventory.LowStockAlertFor(r.adjustment, entity.MovementSale, actorID))
		}
	}
}

// lockOrder devuelve los índices de items ordenados por ProductID (estable).
func lockOrder(items []entity.OrderItem) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].ProductID < items[idx[b]].ProductID
	})
	return idx
}
