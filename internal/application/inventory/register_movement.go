package inventory

import (
	"context"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement.
// Si el body no trae user, el actor es el usuario autenticado.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, actorID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	userID := in.UserID
	if userID == "" {
		userID = actorID
	}
	mov, err := uc.RecordMovement(ctx, RecordMovementInput{
		ItemID:         in.ItemID,
		Type:           in.Type,
		QuantityChange: in.QuantityChange,
		UserID:         userID,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		Type:           string(m.Type),
		QuantityChange: m.QuantityChange,
		UserID:         m.UserID,
		Timestamp:      m.Timestamp,
		Notes:          m.Notes,
	}
}
