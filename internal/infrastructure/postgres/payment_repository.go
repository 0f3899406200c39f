package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, tx_ref, order_ids::text[], email, first_name, last_name, currency, amount, checkout_url, status, created_at, updated_at`

// PaymentRepo transacciones de pago sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (*entity.PaymentTransaction, error) {
	var p entity.PaymentTransaction
	var currency string
	if err := row.Scan(&p.ID, &p.TxRef, &p.OrderIDs, &p.Email, &p.FirstName, &p.LastName, &currency,
		&p.Amount, &p.CheckoutURL, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Currency = entity.Currency(currency)
	return &p, nil
}

// Create inserta la transacción.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.PaymentTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payment_transactions (id, tx_ref, order_ids, email, first_name, last_name, currency, amount, checkout_url, status, created_at, updated_at)
		VALUES ($1, $2, $3::uuid[], $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.TxRef, p.OrderIDs, p.Email, p.FirstName, p.LastName, string(p.Currency),
		p.Amount, p.CheckoutURL, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	return mapError("create payment", err)
}

// GetByTxRef busca por referencia externa; nil, nil si no existe.
func (r *PaymentRepo) GetByTxRef(ctx context.Context, txRef string) (*entity.PaymentTransaction, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payment_transactions WHERE tx_ref = $1`, txRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get payment", err)
	}
	return p, nil
}

// UpdateStatus guarda el estado reportado por la pasarela.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE payment_transactions SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return mapError("update payment status", err)
}

// List transacciones más recientes primero.
func (r *PaymentRepo) List(ctx context.Context, limit, offset int) ([]*entity.PaymentTransaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payment_transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, mapError("list payments", err)
	}
	defer rows.Close()
	var list []*entity.PaymentTransaction
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
