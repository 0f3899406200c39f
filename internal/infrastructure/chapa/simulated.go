package chapa

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

var _ payments.Gateway = (*SimulatedGateway)(nil)

// SimulatedGateway pasarela local para desarrollo (sin CHAPA_SECRET_KEY).
// Todo pago inicializado se verifica como exitoso salvo que se fije otro estado con SetStatus.
type SimulatedGateway struct {
	checkoutBase string
	mu           sync.Mutex
	status       map[string]string
}

// NewSimulatedGateway construye la pasarela simulada.
func NewSimulatedGateway(checkoutBase string) *SimulatedGateway {
	return &SimulatedGateway{checkoutBase: checkoutBase, status: map[string]string{}}
}

// Initialize registra el tx_ref y devuelve una URL ficticia.
func (g *SimulatedGateway) Initialize(_ context.Context, req payments.CheckoutRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.status[req.TxRef]; !ok {
		g.status[req.TxRef] = entity.PaymentStatusSuccess
	}
	return g.checkoutBase + "/checkout/" + req.TxRef, nil
}

// Verify devuelve el estado registrado; tx_ref desconocido = failed.
func (g *SimulatedGateway) Verify(_ context.Context, txRef string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if st, ok := g.status[txRef]; ok {
		return st, nil
	}
	return entity.PaymentStatusFailed, nil
}

// SetStatus fija el estado que devolverá Verify.
func (g *SimulatedGateway) SetStatus(txRef, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status[txRef] = status
}
