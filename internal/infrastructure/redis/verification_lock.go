package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-orders-api/internal/application/payments"
)

var _ payments.VerificationLock = (*VerificationLock)(nil)

const lockKeyPrefix = "lock:"

// releaseScript borra la clave solo si todavía guarda el token del dueño.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// VerificationLock lock distribuido con SET NX + TTL. El valor es un token aleatorio por dueño.
type VerificationLock struct {
	client *redis.Client
}

// NewVerificationLock construye el adaptador.
func NewVerificationLock(client *redis.Client) *VerificationLock {
	return &VerificationLock{client: client}
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Acquire toma la clave si está libre. El TTL evita locks huérfanos si el proceso muere.
func (l *VerificationLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockKeyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release borra la clave con compare-and-delete: si el TTL venció y otra réplica tomó el lock, no lo toca.
func (l *VerificationLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}
