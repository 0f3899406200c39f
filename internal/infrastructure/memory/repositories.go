package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// ── Artículos ───────────────────────────────────────────────────────────────

type itemRepo struct{ at access }

func (r *itemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.at(true, func(d *dataset) error {
		if _, ok := d.items[item.ID]; ok {
			return fmt.Errorf("create inventory item: %w", domain.ErrDuplicate)
		}
		for _, it := range d.items {
			if strings.EqualFold(it.Name, item.Name) {
				return fmt.Errorf("create inventory item: %w", domain.ErrDuplicate)
			}
		}
		d.items[item.ID] = copyItem(item)
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id string) (out *entity.InventoryItem, err error) {
	err = r.at(false, func(d *dataset) error {
		out = copyItem(d.items[id])
		return nil
	})
	return
}

func (r *itemRepo) GetByName(_ context.Context, name string) (out *entity.InventoryItem, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, it := range d.items {
			if strings.EqualFold(it.Name, name) {
				out = copyItem(it)
				return nil
			}
		}
		return nil
	})
	return
}

// GetForUpdate dentro de una transacción el almacén completo ya está bloqueado.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) ApplyDelta(_ context.Context, id string, delta int) (out *entity.InventoryItem, err error) {
	err = r.at(true, func(d *dataset) error {
		it, ok := d.items[id]
		if !ok {
			return fmt.Errorf("apply delta: %w", domain.ErrNotFound)
		}
		if it.Quantity+delta < 0 {
			return fmt.Errorf("apply delta: %w", domain.ErrStockUnderflow)
		}
		it.Quantity += delta
		it.UpdatedAt = time.Now().UTC()
		out = copyItem(it)
		return nil
	})
	return
}

func (r *itemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.at(true, func(d *dataset) error {
		cur, ok := d.items[item.ID]
		if !ok {
			return fmt.Errorf("update inventory item: %w", domain.ErrNotFound)
		}
		for id, it := range d.items {
			if id != item.ID && strings.EqualFold(it.Name, item.Name) {
				return fmt.Errorf("update inventory item: %w", domain.ErrDuplicate)
			}
		}
		qty := cur.Quantity
		*cur = *item
		cur.Quantity = qty
		return nil
	})
}

func (r *itemRepo) List(_ context.Context, filter repository.ItemFilter) (out []*entity.InventoryItem, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, it := range d.items {
			if filter.Category != "" && it.Category != filter.Category {
				continue
			}
			out = append(out, copyItem(it))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, filter.Limit, filter.Offset), err
}

func (r *itemRepo) Delete(_ context.Context, id string) error {
	return r.at(true, func(d *dataset) error {
		delete(d.items, id)
		return nil
	})
}

// ── Libro de movimientos ────────────────────────────────────────────────────

type movementRepo struct{ at access }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.at(true, func(d *dataset) error {
		d.movements = append(d.movements, copyMovement(m))
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (out *entity.StockMovement, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, m := range d.movements {
			if m.ID == id {
				out = copyMovement(m)
				break
			}
		}
		return nil
	})
	return
}

// newestFirst copia los movimientos que cumplen keep, del más reciente al más antiguo.
func newestFirst(d *dataset, keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	var out []*entity.StockMovement
	for i := len(d.movements) - 1; i >= 0; i-- {
		if keep(d.movements[i]) {
			out = append(out, copyMovement(d.movements[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (r *movementRepo) List(_ context.Context, limit, offset int) (out []*entity.StockMovement, err error) {
	err = r.at(false, func(d *dataset) error {
		out = newestFirst(d, func(*entity.StockMovement) bool { return true })
		return nil
	})
	return page(out, limit, offset), err
}

func (r *movementRepo) ListByItem(_ context.Context, itemID string) (out []*entity.StockMovement, err error) {
	err = r.at(false, func(d *dataset) error {
		out = newestFirst(d, func(m *entity.StockMovement) bool { return m.ItemID == itemID })
		return nil
	})
	return
}

func (r *movementRepo) UpdateNotes(_ context.Context, id, notes string) error {
	return r.at(true, func(d *dataset) error {
		for _, m := range d.movements {
			if m.ID == id {
				m.Notes = notes
				return nil
			}
		}
		return fmt.Errorf("update movement notes: %w", domain.ErrNotFound)
	})
}

// ── Pedidos ─────────────────────────────────────────────────────────────────

type orderRepo struct{ at access }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.at(true, func(d *dataset) error {
		if _, ok := d.orders[o.ID]; ok {
			return fmt.Errorf("create order: %w", domain.ErrDuplicate)
		}
		d.orders[o.ID] = copyOrder(o)
		d.orderSeq = append(d.orderSeq, o.ID)
		return nil
	})
}

func (r *orderRepo) GetByID(_ context.Context, id string) (out *entity.Order, err error) {
	err = r.at(false, func(d *dataset) error {
		out = copyOrder(d.orders[id])
		return nil
	})
	return
}

func (r *orderRepo) collect(keep func(*entity.Order) bool) (out []*entity.Order, err error) {
	err = r.at(false, func(d *dataset) error {
		for i := len(d.orderSeq) - 1; i >= 0; i-- {
			if o := d.orders[d.orderSeq[i]]; o != nil && keep(o) {
				out = append(out, copyOrder(o))
			}
		}
		return nil
	})
	return
}

func (r *orderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	out, err := r.collect(func(*entity.Order) bool { return true })
	return page(out, limit, offset), err
}

func (r *orderRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Order, error) {
	return r.collect(func(o *entity.Order) bool { return o.CustomerID == customerID })
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	return r.at(true, func(d *dataset) error {
		o, ok := d.orders[id]
		if !ok {
			return fmt.Errorf("update order status: %w", domain.ErrNotFound)
		}
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *orderRepo) MarkPaid(_ context.Context, id string) error {
	return r.at(true, func(d *dataset) error {
		o, ok := d.orders[id]
		if !ok {
			return fmt.Errorf("mark order paid: %w", domain.ErrNotFound)
		}
		if !o.Paid {
			o.Paid = true
			o.UpdatedAt = time.Now().UTC()
		}
		return nil
	})
}

func (r *orderRepo) HasOpenOrdersForItem(_ context.Context, itemID string) (found bool, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, o := range d.orders {
			if !o.Status.Open() {
				continue
			}
			for _, it := range o.Items {
				if it.ProductID == itemID {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return
}

// ── Pagos ───────────────────────────────────────────────────────────────────

type paymentRepo struct{ at access }

func (r *paymentRepo) Create(_ context.Context, p *entity.PaymentTransaction) error {
	return r.at(true, func(d *dataset) error {
		for _, cur := range d.payments {
			if cur.TxRef == p.TxRef {
				return fmt.Errorf("create payment: %w", domain.ErrDuplicate)
			}
		}
		d.payments[p.ID] = copyPayment(p)
		d.paymentSeq = append(d.paymentSeq, p.ID)
		return nil
	})
}

func (r *paymentRepo) GetByTxRef(_ context.Context, txRef string) (out *entity.PaymentTransaction, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, p := range d.payments {
			if p.TxRef == txRef {
				out = copyPayment(p)
				break
			}
		}
		return nil
	})
	return
}

func (r *paymentRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.at(true, func(d *dataset) error {
		p, ok := d.payments[id]
		if !ok {
			return fmt.Errorf("update payment status: %w", domain.ErrNotFound)
		}
		p.Status = status
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *paymentRepo) List(_ context.Context, limit, offset int) (out []*entity.PaymentTransaction, err error) {
	err = r.at(false, func(d *dataset) error {
		for i := len(d.paymentSeq) - 1; i >= 0; i-- {
			out = append(out, copyPayment(d.payments[d.paymentSeq[i]]))
		}
		return nil
	})
	return page(out, limit, offset), err
}

// ── Usuarios ────────────────────────────────────────────────────────────────

type userRepo struct{ at access }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.at(true, func(d *dataset) error {
		for _, cur := range d.users {
			if strings.EqualFold(cur.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		c := *u
		d.users[u.ID] = &c
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	err = r.at(false, func(d *dataset) error {
		if u, ok := d.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (out *entity.User, err error) {
	err = r.at(false, func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return
}

func (r *userRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.at(true, func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.IsActive = active
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
}
