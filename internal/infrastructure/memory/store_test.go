package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/memory"
)

func seedItem(t *testing.T, s *memory.Store, id string, qty int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Items().Create(context.Background(), &entity.InventoryItem{
		ID: id, Name: "Item " + id, Category: entity.CategoryOther,
		Price: decimal.NewFromInt(10), Quantity: qty, LowStockThreshold: 10,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func TestRun_ErrorDescartaTodosLosCambios(t *testing.T) {
	s := memory.NewStore()
	seedItem(t, s, "a", 5)
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := s.Run(ctx, func(items repository.InventoryItemRepository, movs repository.StockMovementRepository) error {
		_, err := items.ApplyDelta(ctx, "a", -3)
		require.NoError(t, err)
		require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m1", ItemID: "a", Type: entity.MovementSale, QuantityChange: -3}))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	it, err := s.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 5, it.Quantity)
	list, err := s.Movements().ListByItem(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := memory.NewStore()
	seedItem(t, s, "a", 5)
	ctx := context.Background()

	err := s.Run(ctx, func(items repository.InventoryItemRepository, _ repository.StockMovementRepository) error {
		_, err := items.ApplyDelta(ctx, "a", 7)
		return err
	})
	require.NoError(t, err)

	it, _ := s.Items().GetByID(ctx, "a")
	assert.Equal(t, 12, it.Quantity)
}

func TestApplyDelta_NoPermiteNegativos(t *testing.T) {
	s := memory.NewStore()
	seedItem(t, s, "a", 2)

	_, err := s.Items().ApplyDelta(context.Background(), "a", -3)
	assert.ErrorIs(t, err, domain.ErrStockUnderflow)
}

func TestItems_NombreDuplicado(t *testing.T) {
	s := memory.NewStore()
	seedItem(t, s, "a", 1)
	err := s.Items().Create(context.Background(), &entity.InventoryItem{ID: "b", Name: "ITEM A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItems_UpdateNoTocaCantidad(t *testing.T) {
	s := memory.NewStore()
	seedItem(t, s, "a", 4)
	ctx := context.Background()

	it, _ := s.Items().GetByID(ctx, "a")
	it.Quantity = 999
	it.Description = "nueva"
	require.NoError(t, s.Items().Update(ctx, it))

	got, _ := s.Items().GetByID(ctx, "a")
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, "nueva", got.Description)
}

func TestOrders_MarkPaidIdempotente(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o1", CustomerID: "c1", Status: entity.OrderPending}))

	require.NoError(t, s.Orders().MarkPaid(ctx, "o1"))
	require.NoError(t, s.Orders().MarkPaid(ctx, "o1"))
	o, _ := s.Orders().GetByID(ctx, "o1")
	assert.True(t, o.Paid)
}

func TestOrders_HasOpenOrdersForItem(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{
		ID: "o1", CustomerID: "c1", Status: entity.OrderCompleted,
		Items: []entity.OrderItem{{ProductID: "a", Quantity: 1}},
	}))
	open, err := s.Orders().HasOpenOrdersForItem(ctx, "a")
	require.NoError(t, err)
	assert.False(t, open)

	require.NoError(t, s.Orders().UpdateStatus(ctx, "o1", entity.OrderShipped))
	open, err = s.Orders().HasOpenOrdersForItem(ctx, "a")
	require.NoError(t, err)
	assert.True(t, open)
}

func TestLock_ExclusionYLiberacion(t *testing.T) {
	l := memory.NewLock()
	ctx := context.Background()

	token, ok, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, _ = l.Acquire(ctx, "k", time.Minute)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "k", token))
	_, ok, _ = l.Acquire(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestLock_ReleaseNoBorraLockAjeno(t *testing.T) {
	l := memory.NewLock()
	ctx := context.Background()

	first, ok, err := l.Acquire(ctx, "k", time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	time.Sleep(5 * time.Millisecond)

	second, ok, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	// El primer dueño llega tarde: su Release no debe liberar el lock del segundo.
	require.NoError(t, l.Release(ctx, "k", first))
	_, ok, _ = l.Acquire(ctx, "k", time.Minute)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "k", second))
	_, ok, _ = l.Acquire(ctx, "k", time.Minute)
	assert.True(t, ok)
}
