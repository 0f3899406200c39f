package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stock-orders-api/internal/application/notify"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

var _ notify.Sink = (*NotificationSink)(nil)

// MessageWriter lo que el sink necesita de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Topics destino por tipo de notificación.
type Topics struct {
	LowStock string // low-stock
	Orders   string // large-order y out-of-stock
}

// envelope forma del mensaje publicado.
type envelope struct {
	Kind      entity.NotificationKind `json:"kind"`
	EmittedAt time.Time               `json:"emitted_at"`
	Payload   any                     `json:"payload"`
}

// NotificationSink publica notificaciones en Kafka. El topic se elige por mensaje.
type NotificationSink struct {
	writer MessageWriter
	topics Topics
}

// NewWriter construye el writer sin topic fijo (cada mensaje lleva el suyo).
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewNotificationSink construye el sink sobre el writer dado.
func NewNotificationSink(w MessageWriter, topics Topics) *NotificationSink {
	return &NotificationSink{writer: w, topics: topics}
}

// Send serializa y publica. La clave es el artículo o pedido para conservar el orden por entidad.
func (s *NotificationSink) Send(ctx context.Context, n entity.Notification) error {
	topic, key := s.route(n)
	if topic == "" {
		return fmt.Errorf("kafka: sin topic para %q", n.Kind)
	}
	value, err := json.Marshal(envelope{Kind: n.Kind, EmittedAt: time.Now().UTC(), Payload: n.Payload})
	if err != nil {
		return fmt.Errorf("kafka: serializar %s: %w", n.Kind, err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar en %s: %w", topic, err)
	}
	return nil
}

func (s *NotificationSink) route(n entity.Notification) (topic, key string) {
	switch p := n.Payload.(type) {
	case entity.LowStockAlert:
		return s.topics.LowStock, p.ItemID
	case entity.LargeOrderAlert:
		return s.topics.Orders, p.OrderID
	case entity.OutOfStockAlert:
		return s.topics.Orders, p.OrderID
	}
	if n.Kind == entity.NotifyLowStock {
		return s.topics.LowStock, ""
	}
	return s.topics.Orders, ""
}

// Close cierra el writer.
func (s *NotificationSink) Close() error {
	return s.writer.Close()
}
