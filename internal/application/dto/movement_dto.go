package dto

import "time"

// RecordMovementRequest body para POST /api/stock-movements.
// UserID es opcional: por defecto se usa el usuario del token.
type RecordMovementRequest struct {
	ItemID         string `json:"item"`
	Type           string `json:"type"`
	QuantityChange int    `json:"quantity_change"`
	UserID         string `json:"user,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateMovementNotesRequest body para PATCH /api/stock-movements/:id.
type UpdateMovementNotesRequest struct {
	Notes string `json:"notes"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	UserID         string    `json:"user"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
}
