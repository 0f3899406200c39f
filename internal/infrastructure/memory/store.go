// Package memory almacén transaccional en memoria. Implementa los mismos puertos que el
// adaptador PostgreSQL; se usa con STORE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/application/orders"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ orders.OrderTxRunner = (*Store)(nil)
var _ inventory.CatalogTxRunner = (*Store)(nil)

type dataset struct {
	items      map[string]*entity.InventoryItem
	movements  []*entity.StockMovement
	orders     map[string]*entity.Order
	orderSeq   []string
	payments   map[string]*entity.PaymentTransaction
	paymentSeq []string
	users      map[string]*entity.User
}

func newDataset() *dataset {
	return &dataset{
		items:    map[string]*entity.InventoryItem{},
		orders:   map[string]*entity.Order{},
		payments: map[string]*entity.PaymentTransaction{},
		users:    map[string]*entity.User{},
	}
}

// clone copia profunda; las transacciones trabajan sobre la copia y la publican en Commit.
func (d *dataset) clone() *dataset {
	c := &dataset{
		items:      make(map[string]*entity.InventoryItem, len(d.items)),
		movements:  make([]*entity.StockMovement, 0, len(d.movements)),
		orders:     make(map[string]*entity.Order, len(d.orders)),
		orderSeq:   append([]string(nil), d.orderSeq...),
		payments:   make(map[string]*entity.PaymentTransaction, len(d.payments)),
		paymentSeq: append([]string(nil), d.paymentSeq...),
		users:      make(map[string]*entity.User, len(d.users)),
	}
	for k, v := range d.items {
		c.items[k] = copyItem(v)
	}
	for _, m := range d.movements {
		c.movements = append(c.movements, copyMovement(m))
	}
	for k, v := range d.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range d.payments {
		c.payments[k] = copyPayment(v)
	}
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

// access ejecuta fn sobre el dataset. write indica si fn modifica datos.
type access func(write bool, fn func(d *dataset) error) error

// Store almacén en memoria. Las transacciones se serializan: a lo sumo una activa a la vez.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) direct(write bool, fn func(d *dataset) error) error {
	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.data)
}

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() repository.InventoryItemRepository { return &itemRepo{at: s.direct} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{at: s.direct} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{at: s.direct} }

// Payments repositorio de pagos.
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepo{at: s.direct} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{at: s.direct} }

// inTx bloquea el almacén, ejecuta fn sobre una copia y la publica solo si fn no falla.
func (s *Store) inTx(ctx context.Context, fn func(at access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	at := func(_ bool, f func(d *dataset) error) error { return f(work) }
	if err := fn(at); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.inTx(ctx, func(at access) error {
		return fn(&itemRepo{at: at}, &movementRepo{at: at})
	})
}

// RunOrder implementa orders.OrderTxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return s.inTx(ctx, func(at access) error {
		return fn(&itemRepo{at: at}, &movementRepo{at: at}, &orderRepo{at: at})
	})
}

func copyItem(i *entity.InventoryItem) *entity.InventoryItem {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

func copyPayment(p *entity.PaymentTransaction) *entity.PaymentTransaction {
	if p == nil {
		return nil
	}
	c := *p
	c.OrderIDs = append([]string(nil), p.OrderIDs...)
	return &c
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
