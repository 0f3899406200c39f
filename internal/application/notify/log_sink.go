package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// LogSink escribe cada notificación como una línea de log. Sink por defecto sin Kafka.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink construye el sink.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "notify").Logger()}
}

// Send registra la notificación con su payload.
func (s *LogSink) Send(_ context.Context, n entity.Notification) error {
	s.log.Info().Str("kind", string(n.Kind)).Interface("payload", n.Payload).Msg("notificación")
	return nil
}

// MultiSink reenvía a varios sinks y devuelve el primer error.
type MultiSink []Sink

// Send envía a todos los sinks aunque alguno falle.
func (m MultiSink) Send(ctx context.Context, n entity.Notification) error {
	var first error
	for _, s := range m {
		if err := s.Send(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
