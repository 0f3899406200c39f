package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD del catálogo. Quantity se maneja solo vía movimientos y pedidos.
type ItemUseCase struct {
	repo     repository.InventoryItemRepository
	txRunner CatalogTxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.InventoryItemRepository, txRunner CatalogTxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, txRunner: txRunner}
}

func validateName(name string) error {
	if n := len([]rune(name)); n < 2 || n > 100 {
		return fmt.Errorf("%w: name debe tener entre 2 y 100 caracteres", domain.ErrValidation)
	}
	return nil
}

func validateDescription(desc string) error {
	if len([]rune(desc)) > 500 {
		return fmt.Errorf("%w: description excede 500 caracteres", domain.ErrValidation)
	}
	return nil
}

// Create crea un artículo. El nombre es único; la cantidad inicial es el stock de apertura.
func (uc *ItemUseCase) Create(ctx context.Context, authorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	category := entity.Category(in.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: category debe ser Electronics, Clothing, Home, Food u Other", domain.ErrValidation)
	}
	if in.Price.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, fmt.Errorf("%w: price y quantity no pueden ser negativos", domain.ErrValidation)
	}
	threshold := entity.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       strings.TrimSpace(in.Description),
		Category:          category,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
		AuthorID:          authorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// Update actualiza datos de catálogo. No permite modificar Quantity.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if name != item.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		item.Name = name
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		c := entity.Category(*in.Category)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: category inválida", domain.ErrValidation)
		}
		item.Category = c
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrValidation)
		}
		item.Price = *in.Price
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrValidation)
		}
		item.LowStockThreshold = *in.LowStockThreshold
	}
	item.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List lista el catálogo con paginación y filtro opcional de categoría.
func (uc *ItemUseCase) List(ctx context.Context, category string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.Normalize()
	if category != "" && !entity.Category(category).Valid() {
		return nil, fmt.Errorf("%w: category inválida", domain.ErrValidation)
	}
	list, err := uc.repo.List(ctx, repository.ItemFilter{
		Category: entity.Category(category),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock devuelve los artículos bajo su umbral, mayor déficit primero.
func (uc *ItemUseCase) ListLowStock(ctx context.Context) ([]dto.ItemResponse, error) {
	out := make([]dto.ItemResponse, 0)
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		list, err := uc.repo.List(ctx, repository.ItemFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, it := range list {
			if it.IsLowStock() {
				out = append(out, *ToItemResponse(it))
			}
		}
		if len(list) < pageSize {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LowStockThreshold-out[i].Quantity > out[j].LowStockThreshold-out[j].Quantity
	})
	return out, nil
}

// Delete elimina un artículo si ningún pedido abierto lo referencia (ErrConflict en caso contrario).
// La fila se bloquea antes de buscar pedidos abiertos: un pedido que reserva el mismo artículo
// espera al borrado (y falla con ErrNotFound) o el borrado ve el pedido ya confirmado.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunOrder(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		open, err := orderRepo.HasOpenOrdersForItem(ctx, id)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: el artículo está referenciado por un pedido abierto", domain.ErrConflict)
		}
		return itemRepo.Delete(ctx, id)
	})
}

// ToItemResponse convierte la entidad al DTO de salida.
func ToItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		Description:       i.Description,
		Category:          string(i.Category),
		Price:             i.Price,
		Quantity:          i.Quantity,
		LowStockThreshold: i.LowStockThreshold,
		LowStock:          i.IsLowStock(),
		AuthorID:          i.AuthorID,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
