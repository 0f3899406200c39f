package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency moneda soportada por la pasarela de pago.
type Currency string

// Monedas soportadas.
const (
	CurrencyUSD Currency = "USD"
	CurrencyETB Currency = "ETB"
	CurrencyNGN Currency = "NGN"
	CurrencyKES Currency = "KES"
	CurrencyGBP Currency = "GBP"
)

// Valid indica si la moneda está soportada.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyETB, CurrencyNGN, CurrencyKES, CurrencyGBP:
		return true
	}
	return false
}

// Estados de pago reportados por la pasarela que nos interesan.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// PaymentTransaction intento de pago de uno o varios pedidos.
// Amount se calcula desde los totales de los pedidos; Status refleja el estado de la pasarela.
type PaymentTransaction struct {
	ID          string
	TxRef       string // referencia externa única
	OrderIDs    []string
	Email       string
	FirstName   string
	LastName    string
	Currency    Currency
	Amount      decimal.Decimal
	CheckoutURL string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
