package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, name, description, category, price, quantity, low_stock_threshold, COALESCE(author_id::text, ''), created_at, updated_at`

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var category string
	err := row.Scan(&it.ID, &it.Name, &it.Description, &category, &it.Price, &it.Quantity,
		&it.LowStockThreshold, &it.AuthorID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Category = entity.Category(category)
	return &it, nil
}

func (r *InventoryItemRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return it, nil
}

// Create inserta el artículo.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	var author any
	if item.AuthorID != "" {
		author = item.AuthorID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (id, name, description, category, price, quantity, low_stock_threshold, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Name, item.Description, string(item.Category), item.Price, item.Quantity,
		item.LowStockThreshold, author, item.CreatedAt, item.UpdatedAt,
	)
	return mapError("create inventory item", err)
}

// GetByID obtiene un artículo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get inventory item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetByName búsqueda exacta sin distinguir mayúsculas.
func (r *InventoryItemRepo) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get inventory item by name", `SELECT `+itemColumns+` FROM inventory_items WHERE lower(name) = lower($1)`, name)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "lock inventory item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// ApplyDelta suma delta a quantity en una sola sentencia y devuelve la fila resultante.
func (r *InventoryItemRepo) ApplyDelta(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `
		UPDATE inventory_items SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("apply delta: artículo %s no existe", id)
		}
		return nil, mapError("apply delta", err)
	}
	return it, nil
}

// Update modifica los datos de catálogo; quantity no se toca.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE inventory_items
		SET name = $2, description = $3, category = $4, price = $5, low_stock_threshold = $6, updated_at = $7
		WHERE id = $1`,
		item.ID, item.Name, item.Description, string(item.Category), item.Price, item.LowStockThreshold, item.UpdatedAt,
	)
	return mapError("update inventory item", err)
}

// List lista el catálogo por nombre, con filtro opcional de categoría.
func (r *InventoryItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	var args []any
	pos := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", pos)
		args = append(args, string(filter.Category))
		pos++
	}
	query += " ORDER BY name"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list inventory items", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina el artículo.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	return mapError("delete inventory item", err)
}
