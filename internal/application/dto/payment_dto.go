package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitiatePaymentRequest body para POST /api/payments. El monto se calcula desde los pedidos.
type InitiatePaymentRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Currency  string   `json:"currency"`
	OrderIDs  []string `json:"items"`
}

// PaymentResponse salida de una transacción de pago.
type PaymentResponse struct {
	ID          string          `json:"id"`
	TxRef       string          `json:"tx_ref"`
	OrderIDs    []string        `json:"items"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}
