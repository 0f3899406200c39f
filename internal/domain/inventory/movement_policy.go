package inventory

import (
	"fmt"

	"github.com/jhoicas/stock-orders-api/internal/domain"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// ValidateMovement decide si un movimiento propuesto es aceptable para la cantidad actual del artículo
// (servicio de dominio, sin efectos secundarios).
//
// Política de signos: Purchase y Return deben sumar (change > 0); Sale y Adjustment deben restar (change < 0).
// Una salida que supere la cantidad disponible se rechaza con ErrInsufficientStock.
func ValidateMovement(currentQty int, t entity.MovementType, change int) error {
	if change == 0 {
		return fmt.Errorf("%w: quantityChange no puede ser cero", domain.ErrValidation)
	}
	switch t {
	case entity.MovementPurchase, entity.MovementReturn:
		if change < 0 {
			return fmt.Errorf("%w: %s requiere una cantidad positiva", domain.ErrValidation, t)
		}
		return nil
	case entity.MovementSale, entity.MovementAdjustment:
		if change > 0 {
			return fmt.Errorf("%w: %s requiere una cantidad negativa", domain.ErrValidation, t)
		}
		if -change > currentQty {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, currentQty, -change)
		}
		return nil
	default:
		return fmt.Errorf("%w: tipo de movimiento %q inválido", domain.ErrValidation, t)
	}
}

// NextQuantity calcula la cantidad resultante de aplicar delta. Devuelve ErrStockUnderflow si queda negativa.
func NextQuantity(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, fmt.Errorf("%w: %d%+d", domain.ErrStockUnderflow, current, delta)
	}
	return next, nil
}
