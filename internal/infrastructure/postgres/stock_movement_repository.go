package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, item_id, type, quantity_change, user_id, timestamp, notes`

// StockMovementRepo libro de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var t string
	if err := row.Scan(&m.ID, &m.ItemID, &t, &m.QuantityChange, &m.UserID, &m.Timestamp, &m.Notes); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(t)
	return &m, nil
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ItemID, string(m.Type), m.QuantityChange, m.UserID, m.Timestamp, m.Notes,
	)
	return mapError("create stock movement", err)
}

// GetByID obtiene un movimiento; nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get stock movement", err)
	}
	return m, nil
}

// List movimientos más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements ORDER BY timestamp DESC, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByItem movimientos de un artículo, más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE item_id = $1 ORDER BY timestamp DESC, id`, itemID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateNotes única corrección permitida sobre el libro.
func (r *StockMovementRepo) UpdateNotes(ctx context.Context, id, notes string) error {
	_, err := r.q.Exec(ctx, `UPDATE stock_movements SET notes = $2 WHERE id = $1`, id, notes)
	return mapError("update movement notes", err)
}
