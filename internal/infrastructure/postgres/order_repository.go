package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_id, total_amount, status, important_transaction, paid, created_at, updated_at`

// OrderRepo pedidos y sus líneas (order_items) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Create debe usarse con una tx para que cabecera y líneas sean atómicas.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &status, &o.ImportantTransaction, &o.Paid, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create inserta cabecera y líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.CustomerID, o.TotalAmount, string(o.Status), o.ImportantTransaction, o.Paid, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return mapError("create order", err)
	}
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (order_id, line_no, product_id, quantity, price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, i+1, it.ProductID, it.Quantity, it.Price, it.Subtotal,
		)
		if err != nil {
			return mapError("create order item", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas; nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get order", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByCustomer pedidos de un cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id`, customerID)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list orders", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de varios pedidos en una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, quantity, price, subtotal
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return mapError("list order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	return mapError("update order status", err)
}

// MarkPaid pone paid = true; repetirlo no tiene efecto.
func (r *OrderRepo) MarkPaid(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET paid = TRUE, updated_at = NOW() WHERE id = $1 AND NOT paid`, id)
	return mapError("mark order paid", err)
}

// HasOpenOrdersForItem indica si algún pedido Pending/Processing/Shipped referencia el artículo.
func (r *OrderRepo) HasOpenOrdersForItem(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_items oi JOIN orders o ON o.id = oi.order_id
			WHERE oi.product_id = $1 AND o.status IN ('Pending', 'Processing', 'Shipped')
		)`, itemID).Scan(&exists)
	if err != nil {
		return false, mapError("check open orders", err)
	}
	return exists, nil
}
