package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// Sink destino de las notificaciones (Kafka, log, ...).
type Sink interface {
	Send(ctx context.Context, n entity.Notification) error
}

// Options parámetros del dispatcher.
type Options struct {
	QueueSize int           // capacidad de la cola; al llenarse se descarta
	Workers   int           // goroutines que consumen la cola
	Timeout   time.Duration // límite por envío al sink
}

// Dispatcher cola acotada con workers. Notify nunca bloquea al caller:
// si la cola está llena (o el dispatcher cerrado) la notificación se descarta con un warn.
type Dispatcher struct {
	sink    Sink
	opts    Options
	queue   chan entity.Notification
	log     zerolog.Logger
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

// NewDispatcher construye el dispatcher y arranca los workers.
func NewDispatcher(sink Sink, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	d := &Dispatcher{
		sink:  sink,
		opts:  opts,
		queue: make(chan entity.Notification, opts.QueueSize),
		log:   log.With().Str("component", "notify").Logger(),
	}
	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	return d
}

// Notify encola la notificación sin bloquear.
func (d *Dispatcher) Notify(kind entity.NotificationKind, payload any) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("kind", string(kind)).Msg("dispatcher cerrado, notificación descartada")
		return
	}
	select {
	case d.queue <- entity.Notification{Kind: kind, Payload: payload}:
	default:
		dropped := d.dropped.Add(1)
		d.log.Warn().Str("kind", string(kind)).Uint64("dropped", dropped).Msg("cola de notificaciones llena, descartada")
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.opts.Timeout)
		err := d.sink.Send(ctx, n)
		cancel()
		if err != nil {
			ev := d.log.Error()
			if errors.Is(err, context.DeadlineExceeded) {
				ev = d.log.Warn()
			}
			ev.Err(err).Int("worker", id).Str("kind", string(n.Kind)).Msg("envío de notificación fallido")
		}
	}
}

// Close deja de aceptar notificaciones y espera a que los workers vacíen la cola
// o a que ctx expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped cantidad de notificaciones descartadas por cola llena.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}
