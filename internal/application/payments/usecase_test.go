package payments_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/application/orders"
	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/chapa"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// countingGateway envuelve la pasarela simulada y cuenta las verificaciones.
type countingGateway struct {
	*chapa.SimulatedGateway
	verifies atomic.Int32
	delay    time.Duration
}

func (g *countingGateway) Verify(ctx context.Context, txRef string) (string, error) {
	g.verifies.Add(1)
	time.Sleep(g.delay)
	return g.SimulatedGateway.Verify(ctx, txRef)
}

type failingGateway struct{}

func (failingGateway) Initialize(context.Context, payments.CheckoutRequest) (string, error) {
	return "", errors.New("pasarela caída")
}

func (failingGateway) Verify(context.Context, string) (string, error) { return "", errors.New("pasarela caída") }

type fixture struct {
	store   *memory.Store
	orders  *orders.OrderUseCase
	gateway *countingGateway
	lock    *memory.Lock
	uc      *payments.PaymentUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		store:   store,
		orders:  orders.NewOrderUseCase(store.Orders(), zerolog.Nop()),
		gateway: &countingGateway{SimulatedGateway: chapa.NewSimulatedGateway("http://checkout.local")},
		lock:    memory.NewLock(),
	}
	f.uc = payments.NewPaymentUseCase(store.Payments(), f.orders, f.gateway, f.lock,
		payments.Config{CallbackBaseURL: "http://api.local/", ReturnURL: "http://tienda.local/gracias"}, zerolog.Nop())
	return f
}

func (f *fixture) seedOrder(t *testing.T, id, total string) {
	t.Helper()
	now := time.Now().UTC()
	amount := decimal.RequireFromString(total)
	require.NoError(t, f.store.Orders().Create(context.Background(), &entity.Order{
		ID: id, CustomerID: "c-1", Status: entity.OrderPending, TotalAmount: amount, CreatedAt: now, UpdatedAt: now,
		Items: []entity.OrderItem{{ProductID: "p-1", Quantity: 1, Price: amount, Subtotal: amount}},
	}))
}

func request(ids ...string) dto.InitiatePaymentRequest {
	return dto.InitiatePaymentRequest{
		Email: "ana@correo.com", FirstName: "Ana", LastName: "Díaz", Currency: "usd", OrderIDs: ids,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InitiatePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiatePayment_SumaPedidosSinDuplicar(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "120.50")
	f.seedOrder(t, "o-2", "79.50")

	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1", "o-2", "o-1"))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(200).Equal(tx.Amount), "amount = %s", tx.Amount)
	assert.Equal(t, []string{"o-1", "o-2"}, tx.OrderIDs)
	assert.Equal(t, entity.CurrencyUSD, tx.Currency)
	assert.Equal(t, entity.PaymentStatusPending, tx.Status)
	assert.True(t, strings.HasPrefix(tx.TxRef, "tx-"))
	assert.Equal(t, "http://checkout.local/checkout/"+tx.TxRef, tx.CheckoutURL)

	stored, err := f.store.Payments().GetByTxRef(context.Background(), tx.TxRef)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestInitiatePayment_Validaciones(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	ctx := context.Background()

	bad := request("o-1")
	bad.Email = "no-es-email"
	_, err := f.uc.InitiatePayment(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = request("o-1")
	bad.Currency = "XYZ"
	_, err = f.uc.InitiatePayment(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.InitiatePayment(ctx, request())
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.InitiatePayment(ctx, request("o-404"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitiatePayment_ErrorDePasarelaNoPersiste(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	uc := payments.NewPaymentUseCase(f.store.Payments(), f.orders, failingGateway{}, f.lock, payments.Config{}, zerolog.Nop())

	_, err := uc.InitiatePayment(context.Background(), request("o-1"))
	require.Error(t, err)

	list, err := uc.ListPayments(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyPayment_ExitoMarcaPedidosPagados(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	f.seedOrder(t, "o-2", "20")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1", "o-2"))
	require.NoError(t, err)

	verified, err := f.uc.VerifyPayment(context.Background(), tx.TxRef)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, verified.Status)

	for _, id := range []string{"o-1", "o-2"} {
		o, err := f.orders.GetOrder(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, o.Paid, "pedido %s", id)
	}

	_, err = f.uc.InitiatePayment(context.Background(), request("o-1"))
	assert.ErrorIs(t, err, domain.ErrConflict, "un pedido pagado no se cobra otra vez")
}

func TestVerifyPayment_YaExitosoNoConsultaPasarela(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1"))
	require.NoError(t, err)

	_, err = f.uc.VerifyPayment(context.Background(), tx.TxRef)
	require.NoError(t, err)
	_, err = f.uc.VerifyPayment(context.Background(), tx.TxRef)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.gateway.verifies.Load())
}

func TestVerifyPayment_FallidoNoMarcaPedidos(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1"))
	require.NoError(t, err)
	f.gateway.SetStatus(tx.TxRef, entity.PaymentStatusFailed)

	verified, err := f.uc.VerifyPayment(context.Background(), tx.TxRef)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, verified.Status)

	o, err := f.orders.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.False(t, o.Paid)
}

func TestVerifyPayment_Desconocido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.VerifyPayment(context.Background(), "tx-no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.VerifyPayment(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerifyPayment_LockTomadoPorOtroProceso(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1"))
	require.NoError(t, err)

	_, ok, err := f.lock.Acquire(context.Background(), "payment:verify:"+tx.TxRef, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.VerifyPayment(context.Background(), tx.TxRef)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int32(0), f.gateway.verifies.Load())
}

func TestVerifyPayment_ConcurrentesSeColapsan(t *testing.T) {
	f := newFixture()
	f.gateway.delay = 50 * time.Millisecond
	f.seedOrder(t, "o-1", "10")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.uc.VerifyPayment(context.Background(), tx.TxRef)
			assert.NoError(t, err)
			if v != nil {
				assert.Equal(t, entity.PaymentStatusSuccess, v.Status)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, f.gateway.verifies.Load(), int32(5))
	o, err := f.orders.GetOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.True(t, o.Paid)
}

func TestVerifyPayment_LiberaSuLockAlTerminar(t *testing.T) {
	f := newFixture()
	f.seedOrder(t, "o-1", "10")
	tx, err := f.uc.InitiatePayment(context.Background(), request("o-1"))
	require.NoError(t, err)
	f.gateway.SetStatus(tx.TxRef, entity.PaymentStatusFailed)

	_, err = f.uc.VerifyPayment(context.Background(), tx.TxRef)
	require.NoError(t, err)

	token, ok, err := f.lock.Acquire(context.Background(), "payment:verify:"+tx.TxRef, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, f.lock.Release(context.Background(), "payment:verify:"+tx.TxRef, token))
}
