package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	domainorder "github.com/jhoicas/stock-orders-api/internal/domain/order"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// LineRequest línea solicitada: producto y cantidad.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Builder resuelve las líneas contra el catálogo y calcula subtotales y total.
// No modifica inventario.
type Builder struct {
	largeOrderThreshold decimal.Decimal
}

// NewBuilder construye el builder. threshold <= 0 usa el umbral por defecto (5000).
func NewBuilder(threshold decimal.Decimal) *Builder {
	if !threshold.GreaterThan(decimal.Zero) {
		threshold = domainorder.DefaultLargeOrderThreshold
	}
	return &Builder{largeOrderThreshold: threshold}
}

// LargeOrderThreshold umbral configurado de pedido grande.
func (b *Builder) LargeOrderThreshold() decimal.Decimal {
	return b.largeOrderThreshold
}

// Build valida las líneas, congela el precio actual de cada producto y deriva totales.
// Devuelve también el catálogo resuelto por ID.
func (b *Builder) Build(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	customerID string,
	lines []LineRequest,
) (*entity.Order, map[string]*entity.InventoryItem, error) {
	if strings.TrimSpace(customerID) == "" || len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: customer e items son obligatorios", domain.ErrValidation)
	}
	resolved := make(map[string]*entity.InventoryItem, len(lines))
	items := make([]entity.OrderItem, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return nil, nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrValidation, i+1)
		}
		if line.Quantity < 1 {
			return nil, nil, fmt.Errorf("%w: línea %d con cantidad menor a 1", domain.ErrValidation, i+1)
		}
		product, ok := resolved[line.ProductID]
		if !ok {
			var err error
			product, err = itemRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			resolved[line.ProductID] = product
		}
		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}
	order := &entity.Order{
		CustomerID: customerID,
		Items:      items,
		Status:     entity.OrderPending,
	}
	domainorder.Apply(order, b.largeOrderThreshold)
	return order, resolved, nil
}
