package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// CheckoutRequest datos enviados a la pasarela para abrir un checkout.
type CheckoutRequest struct {
	TxRef       string
	Email       string
	FirstName   string
	LastName    string
	Currency    entity.Currency
	Amount      decimal.Decimal
	CallbackURL string
	ReturnURL   string
}

// Gateway puerto de la pasarela de pago (Chapa o simulada).
type Gateway interface {
	// Initialize abre el checkout y devuelve la URL a la que redirigir al cliente.
	Initialize(ctx context.Context, req CheckoutRequest) (checkoutURL string, err error)
	// Verify consulta el estado del pago: pending | success | failed.
	Verify(ctx context.Context, txRef string) (status string, err error)
}

// VerificationLock exclusión entre instancias al verificar un mismo tx_ref.
type VerificationLock interface {
	// Acquire devuelve ok=false si otro proceso ya tiene el lock. token identifica al dueño.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release libera la clave solo si sigue perteneciendo a token (si expiró y otro la tomó, no la toca).
	Release(ctx context.Context, key, token string) error
}

// OrderPayer marca pedidos como pagados (idempotente). Lo implementa *orders.OrderUseCase.
type OrderPayer interface {
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	MarkPaid(ctx context.Context, id string) (*entity.Order, error)
}
