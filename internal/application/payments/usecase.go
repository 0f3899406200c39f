package payments

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

const verifyLockTTL = 30 * time.Second

// Config URLs que se envían a la pasarela.
type Config struct {
	CallbackBaseURL string // se le agrega /api/payments/verify/<tx_ref>
	ReturnURL       string
}

// PaymentUseCase inicia y verifica pagos de pedidos.
type PaymentUseCase struct {
	repo    repository.PaymentRepository
	orders  OrderPayer
	gateway Gateway
	lock    VerificationLock
	cfg     Config
	group   singleflight.Group
	log     zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	repo repository.PaymentRepository,
	orders OrderPayer,
	gateway Gateway,
	lock VerificationLock,
	cfg Config,
	log zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		repo:    repo,
		orders:  orders,
		gateway: gateway,
		lock:    lock,
		cfg:     cfg,
		log:     log.With().Str("component", "payments").Logger(),
	}
}

// InitiatePayment calcula el monto desde los pedidos, registra la transacción y abre el checkout.
// Pedidos ya pagados se rechazan con ErrConflict.
func (uc *PaymentUseCase) InitiatePayment(ctx context.Context, in dto.InitiatePaymentRequest) (*entity.PaymentTransaction, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: first_name y last_name son obligatorios", domain.ErrValidation)
	}
	currency := entity.Currency(strings.ToUpper(in.Currency))
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: moneda %q no soportada", domain.ErrValidation, in.Currency)
	}
	if len(in.OrderIDs) == 0 {
		return nil, fmt.Errorf("%w: items (pedidos) es obligatorio", domain.ErrValidation)
	}

	amount := decimal.Zero
	seen := make(map[string]bool, len(in.OrderIDs))
	orderIDs := make([]string, 0, len(in.OrderIDs))
	for _, id := range in.OrderIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		o, err := uc.orders.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if o.Paid {
			return nil, fmt.Errorf("%w: el pedido %s ya está pagado", domain.ErrConflict, id)
		}
		amount = amount.Add(o.TotalAmount)
		orderIDs = append(orderIDs, id)
	}

	now := time.Now().UTC()
	tx := &entity.PaymentTransaction{
		ID:        uuid.New().String(),
		TxRef:     newTxRef(now),
		OrderIDs:  orderIDs,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Currency:  currency,
		Amount:    amount,
		Status:    entity.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	checkoutURL, err := uc.gateway.Initialize(ctx, CheckoutRequest{
		TxRef:       tx.TxRef,
		Email:       tx.Email,
		FirstName:   tx.FirstName,
		LastName:    tx.LastName,
		Currency:    tx.Currency,
		Amount:      tx.Amount,
		CallbackURL: strings.TrimRight(uc.cfg.CallbackBaseURL, "/") + "/api/payments/verify/" + tx.TxRef,
		ReturnURL:   uc.cfg.ReturnURL,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("tx_ref", tx.TxRef).Msg("pasarela rechazó la inicialización")
		return nil, err
	}
	tx.CheckoutURL = checkoutURL
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tx_ref", tx.TxRef).Str("amount", amount.StringFixed(2)).Int("orders", len(orderIDs)).Msg("pago iniciado")
	return tx, nil
}

// VerifyPayment consulta la pasarela y, si el pago fue exitoso, marca los pedidos como pagados.
// Verificaciones concurrentes del mismo tx_ref se colapsan en una (singleflight + lock distribuido).
func (uc *PaymentUseCase) VerifyPayment(ctx context.Context, txRef string) (*entity.PaymentTransaction, error) {
	if strings.TrimSpace(txRef) == "" {
		return nil, fmt.Errorf("%w: tx_ref requerido", domain.ErrValidation)
	}
	v, err, _ := uc.group.Do(txRef, func() (interface{}, error) {
		return uc.verify(ctx, txRef)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.PaymentTransaction), nil
}

func (uc *PaymentUseCase) verify(ctx context.Context, txRef string) (*entity.PaymentTransaction, error) {
	tx, err := uc.repo.GetByTxRef(ctx, txRef)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, txRef)
	}
	if tx.Status == entity.PaymentStatusSuccess {
		return tx, nil
	}

	key := "payment:verify:" + txRef
	token, ok, err := uc.lock.Acquire(ctx, key, verifyLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: verificación de %s en curso", domain.ErrConflict, txRef)
	}
	defer func() {
		if err := uc.lock.Release(context.Background(), key, token); err != nil {
			uc.log.Warn().Err(err).Str("tx_ref", txRef).Msg("no se pudo liberar el lock de verificación")
		}
	}()

	status, err := uc.gateway.Verify(ctx, txRef)
	if err != nil {
		return nil, err
	}
	if status == entity.PaymentStatusSuccess {
		for _, id := range tx.OrderIDs {
			if _, err := uc.orders.MarkPaid(ctx, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().Str("tx_ref", txRef).Str("order_id", id).Msg("pedido del pago no existe")
					continue
				}
				return nil, err
			}
		}
	}
	if status != tx.Status {
		if err := uc.repo.UpdateStatus(ctx, tx.ID, status); err != nil {
			return nil, err
		}
		tx.Status = status
		tx.UpdatedAt = time.Now().UTC()
	}
	uc.log.Info().Str("tx_ref", txRef).Str("status", status).Msg("pago verificado")
	return tx, nil
}

// ListPayments lista transacciones, más recientes primero.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, page dto.PageRequest) ([]*entity.PaymentTransaction, error) {
	page.Normalize()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}

// ToPaymentResponse convierte la entidad al DTO de salida.
func ToPaymentResponse(tx *entity.PaymentTransaction) *dto.PaymentResponse {
	if tx == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:          tx.ID,
		TxRef:       tx.TxRef,
		OrderIDs:    tx.OrderIDs,
		Email:       tx.Email,
		FirstName:   tx.FirstName,
		LastName:    tx.LastName,
		Currency:    string(tx.Currency),
		Amount:      tx.Amount,
		CheckoutURL: tx.CheckoutURL,
		Status:      tx.Status,
		CreatedAt:   tx.CreatedAt,
	}
}

// newTxRef tx-<unix-ms>-<8 hex>.
func newTxRef(now time.Time) string {
	return fmt.Sprintf("tx-%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}
