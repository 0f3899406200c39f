package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-orders-api/internal/application/auth"
	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/application/orders"
	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *auth.UserUseCase
	ItemUC         *inventory.ItemUseCase
	RecordMovement *inventory.RecordMovementUseCase
	CreateOrder    *orders.CreateOrderUseCase
	OrderUC        *orders.OrderUseCase
	PaymentUC      *payments.PaymentUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Callback de la pasarela (público): se registra antes del grupo protegido
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.Get("/payments/verify/:txRef", paymentHandler.Verify)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Patch("/:id/active", RequireRole(entity.RoleAdmin), userHandler.SetActive)

	// Catálogo
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", managers, itemHandler.Delete)

	// Libro de movimientos
	movements := protected.Group("/stock-movements")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement)
	movements.Post("/", inventoryHandler.RecordMovement)
	movements.Get("/", inventoryHandler.List)
	movements.Get("/item/:itemId", inventoryHandler.ListByItem)
	movements.Get("/:id", inventoryHandler.GetByID)
	movements.Patch("/:id", inventoryHandler.UpdateNotes)

	// Pedidos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/customer/:customerId", orderHandler.ListByCustomer)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", managers, orderHandler.UpdateStatus)

	// Pagos
	paymentsGroup := protected.Group("/payments")
	paymentsGroup.Post("/", paymentHandler.Initiate)
	paymentsGroup.Get("/", paymentHandler.List)
}
