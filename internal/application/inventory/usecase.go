package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-orders-api/internal/domain/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional:
// validación → ajuste de cantidad → registro en el libro, todo en la misma transacción.
// La alerta de stock bajo se encola después del Commit.
type RecordMovementUseCase struct {
	txRunner TxRunner
	adjuster *Adjuster
	movRepo  repository.StockMovementRepository
	notifier Notifier
	log      zerolog.Logger
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	adjuster *Adjuster,
	movRepo repository.StockMovementRepository,
	notifier Notifier,
	log zerolog.Logger,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner: txRunner,
		adjuster: adjuster,
		movRepo:  movRepo,
		notifier: notifier,
		log:      log.With().Str("component", "stock_movements").Logger(),
	}
}

// RecordMovementInput entrada para registrar un movimiento.
type RecordMovementInput struct {
	ItemID         string
	Type           string
	QuantityChange int
	UserID         string
	Notes          string
}

func (in RecordMovementInput) validate() (entity.MovementType, error) {
	if strings.TrimSpace(in.ItemID) == "" || strings.TrimSpace(in.UserID) == "" || in.Type == "" || in.QuantityChange == 0 {
		return "", fmt.Errorf("%w: item, type, quantityChange y user son obligatorios", domain.ErrValidation)
	}
	if len(in.Notes) > entity.MaxNotesLength {
		return "", fmt.Errorf("%w: notes excede %d caracteres", domain.ErrValidation, entity.MaxNotesLength)
	}
	t, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return t, nil
}

// RecordMovement valida y registra el movimiento. El ajuste de inventario y la entrada del libro
// se confirman juntos o ninguno.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*entity.StockMovement, error) {
	movType, err := in.validate()
	if err != nil {
		return nil, err
	}

	var mov *entity.StockMovement
	var adj *Adjustment
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila para que la validación vea la misma cantidad que el ajuste
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.ItemID)
		}
		if err := domaininv.ValidateMovement(item.Quantity, movType, in.QuantityChange); err != nil {
			return err
		}
		adj, err = uc.adjuster.Apply(ctx, itemRepo, in.ItemID, in.QuantityChange)
		if err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:             uuid.New().String(),
			ItemID:         in.ItemID,
			Type:           movType,
			QuantityChange: in.QuantityChange,
			UserID:         in.UserID,
			Timestamp:      time.Now().UTC(),
			Notes:          strings.TrimSpace(in.Notes),
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("item_id", in.ItemID).Str("type", in.Type).Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("item_id", mov.ItemID).
		Str("type", string(mov.Type)).
		Int("quantity_change", mov.QuantityChange).
		Int("quantity", adj.Item.Quantity).
		Msg("movimiento registrado")

	if adj.LowStock {
		uc.notifier.Notify(entity.NotifyLowStock, LowStockAlertFor(adj, movType, in.UserID))
	}
	return mov, nil
}

// LowStockAlertFor arma el payload de stock bajo a partir de la foto posterior al ajuste.
func LowStockAlertFor(adj *Adjustment, movType entity.MovementType, userID string) entity.LowStockAlert {
	return entity.LowStockAlert{
		ItemID:          adj.Item.ID,
		ItemName:        adj.Item.Name,
		AuthorID:        adj.Item.AuthorID,
		CurrentQuantity: adj.Item.Quantity,
		Threshold:       adj.Item.LowStockThreshold,
		MovementType:    movType,
		QuantityChange:  adj.Delta,
		UserID:          userID,
	}
}

// GetMovement obtiene un movimiento por ID.
func (uc *RecordMovementUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListMovements lista el libro completo, más recientes primero.
func (uc *RecordMovementUseCase) ListMovements(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(ctx, limit, offset)
}

// ListMovementsByItem lista los movimientos de un artículo. ErrNotFound si no tiene ninguno.
func (uc *RecordMovementUseCase) ListMovementsByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	list, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list, nil
}

// UpdateMovementNotes corrige las notas de un movimiento (única mutación permitida del libro).
func (uc *RecordMovementUseCase) UpdateMovementNotes(ctx context.Context, id, notes string) (*entity.StockMovement, error) {
	if len(notes) > entity.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes excede %d caracteres", domain.ErrValidation, entity.MaxNotesLength)
	}
	mov, err := uc.GetMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return mov, nil
	}
	if err := uc.movRepo.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	mov.Notes = notes
	return mov, nil
}
