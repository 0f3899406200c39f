package entity

import (
	"fmt"
	"time"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento. Purchase y Return suman stock; Sale y Adjustment restan.
const (
	MovementPurchase   MovementType = "Purchase"
	MovementSale       MovementType = "Sale"
	MovementReturn     MovementType = "Return"
	MovementAdjustment MovementType = "Adjustment"
)

// ParseMovementType convierte el valor recibido en un MovementType válido.
func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(s); t {
	case MovementPurchase, MovementSale, MovementReturn, MovementAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido %q", s)
}

// Increases indica si el tipo exige un efecto positivo sobre el stock.
func (t MovementType) Increases() bool {
	return t == MovementPurchase || t == MovementReturn
}

// MaxNotesLength longitud máxima de las notas de un movimiento.
const MaxNotesLength = 500

// StockMovement entrada inmutable del libro de movimientos; solo Notes admite corrección administrativa.
type StockMovement struct {
	ID             string
	ItemID         string
	Type           MovementType
	QuantityChange int // firmado: positivo Purchase/Return, negativo Sale/Adjustment
	UserID         string
	Timestamp      time.Time
	Notes          string
}
