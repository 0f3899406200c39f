package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-orders-api/internal/application/payments"
)

var _ payments.VerificationLock = (*Lock)(nil)

type heldLock struct {
	token   string
	expires time.Time
}

// Lock lock de verificación de un solo proceso (sin Redis). Las claves expiran tras el TTL.
type Lock struct {
	mu   sync.Mutex
	held map[string]heldLock
	now  func() time.Time
}

// NewLock construye el lock.
func NewLock() *Lock {
	return &Lock{held: map[string]heldLock{}, now: time.Now}
}

// Acquire devuelve ok=false si la clave está tomada y no expiró.
func (l *Lock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = heldLock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

// Release libera la clave si token sigue siendo el dueño.
func (l *Lock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
