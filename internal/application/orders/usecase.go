package orders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// OrderUseCase consultas de pedidos y transiciones administrativas (estado, pagado).
type OrderUseCase struct {
	repo repository.OrderRepository
	log  zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, log: log.With().Str("component", "orders").Logger()}
}

// GetOrder obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return o, nil
}

// ListOrders lista pedidos, más recientes primero.
func (uc *OrderUseCase) ListOrders(ctx context.Context, page dto.PageRequest) ([]*entity.Order, error) {
	page.Normalize()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}

// ListOrdersByCustomer lista los pedidos de un cliente. ErrNotFound si no tiene ninguno.
func (uc *OrderUseCase) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: el cliente no tiene pedidos", domain.ErrNotFound)
	}
	return list, nil
}

// UpdateOrderStatus cambia el estado (transición libre entre los valores permitidos).
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrValidation)
	}
	st := entity.OrderStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: estado %q inválido", domain.ErrValidation, status)
	}
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("from", string(o.Status)).Str("to", status).Msg("estado de pedido actualizado")
	return uc.GetOrder(ctx, id)
}

// MarkPaid marca el pedido como pagado. Idempotente: repetirlo no falla ni revierte el flag.
func (uc *OrderUseCase) MarkPaid(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Paid {
		return o, nil
	}
	if err := uc.repo.MarkPaid(ctx, id); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Msg("pedido pagado")
	o.Paid = true
	return o, nil
}

// ToOrderResponse convierte la entidad al DTO de salida.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		Items:                make([]dto.OrderItemResponse, 0, len(o.Items)),
		TotalAmount:          o.TotalAmount,
		Status:               string(o.Status),
		ImportantTransaction: o.ImportantTransaction,
		Paid:                 o.Paid,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
