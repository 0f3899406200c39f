package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-orders-api/internal/application/auth"
	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/application/notify"
	"github.com/jhoicas/stock-orders-api/internal/application/orders"
	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain/repository"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/chapa"
	infrakafka "github.com/jhoicas/stock-orders-api/internal/infrastructure/kafka"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-orders-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stock-orders-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/stock-orders-api/internal/interfaces/http"
	"github.com/jhoicas/stock-orders-api/pkg/config"
	"github.com/jhoicas/stock-orders-api/pkg/logger"
)

// store repositorios y runners de transacción del driver elegido.
type store struct {
	items     repository.InventoryItemRepository
	movements repository.StockMovementRepository
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	users     repository.UserRepository
	tx        interface {
		inventory.TxRunner
		orders.OrderTxRunner
	}
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStore(ctx, cfg, log)
	defer st.close()

	// Notificaciones: siempre al log; además a Kafka si hay brokers
	sinks := notify.MultiSink{notify.NewLogSink(log.Component("notifications"))}
	var kafkaSink *infrakafka.NotificationSink
	if cfg.Kafka.Enabled() {
		kafkaSink = infrakafka.NewNotificationSink(infrakafka.NewWriter(cfg.Kafka.Brokers), infrakafka.Topics{
			LowStock: cfg.Kafka.LowStockTopic,
			Orders:   cfg.Kafka.OrderTopic,
		})
		sinks = append(sinks, kafkaSink)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("notificaciones hacia Kafka")
	}
	dispatcher := notify.NewDispatcher(sinks, notify.Options{
		QueueSize: cfg.Notify.QueueSize,
		Workers:   cfg.Notify.Workers,
		Timeout:   cfg.Notify.Timeout,
	}, log.Component("dispatcher"))

	// Lock de verificación de pagos: Redis si está configurado, si no en memoria (una sola instancia)
	var verifyLock payments.VerificationLock = memory.NewLock()
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		verifyLock = infraredis.NewVerificationLock(client)
	}

	var gateway payments.Gateway
	if cfg.Payments.ChapaSecretKey != "" {
		gateway = chapa.NewGateway(cfg.Payments.ChapaBaseURL, cfg.Payments.ChapaSecretKey)
	} else {
		log.Warn().Msg("CHAPA_SECRET_KEY vacío: pasarela de pagos simulada")
		gateway = chapa.NewSimulatedGateway(cfg.Payments.CallbackBaseURL)
	}

	adjuster := inventory.NewAdjuster()
	recordMovementUC := inventory.NewRecordMovementUseCase(st.tx, adjuster, st.movements, dispatcher, log.Zerolog())
	itemUC := inventory.NewItemUseCase(st.items, st.tx)
	createOrderUC := orders.NewCreateOrderUseCase(st.tx, orders.NewBuilder(cfg.Orders.LargeThreshold), adjuster, dispatcher, log.Zerolog())
	orderUC := orders.NewOrderUseCase(st.orders, log.Zerolog())
	paymentUC := payments.NewPaymentUseCase(st.payments, orderUC, gateway, verifyLock, payments.Config{
		CallbackBaseURL: cfg.Payments.CallbackBaseURL,
		ReturnURL:       cfg.Payments.ReturnURL,
	}, log.Zerolog())
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         auth.NewUserUseCase(st.users),
		ItemUC:         itemUC,
		RecordMovement: recordMovementUC,
		CreateOrder:    createOrderUC,
		OrderUC:        orderUC,
		PaymentUC:      paymentUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Después del servidor: ya no entran notificaciones nuevas y se vacía la cola
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Uint64("dropped", dispatcher.Dropped()).Msg("cola de notificaciones sin vaciar")
	}
	if kafkaSink != nil {
		if err := kafkaSink.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar writer de Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre PostgreSQL (con migraciones) o el almacén en memoria según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) store {
	if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return store{
			items:     mem.Items(),
			movements: mem.Movements(),
			orders:    mem.Orders(),
			payments:  mem.Payments(),
			users:     mem.Users(),
			tx:        mem,
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migraciones")
	}
	return store{
		items:     postgres.NewInventoryItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		payments:  postgres.NewPaymentRepository(pool),
		users:     postgres.NewUserRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
}
