package repository

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para transacciones de pago.
type PaymentRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	GetByTxRef(ctx context.Context, txRef string) (*entity.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.PaymentTransaction, error)
}
