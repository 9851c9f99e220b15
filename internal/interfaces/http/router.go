package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backend/internal/application/auth"
	"github.com/tu-usuario/pos-backend/internal/application/catalog"
	"github.com/tu-usuario/pos-backend/internal/application/customer"
	"github.com/tu-usuario/pos-backend/internal/application/inventory"
	"github.com/tu-usuario/pos-backend/internal/application/order"
	"github.com/tu-usuario/pos-backend/internal/application/payment"
	"github.com/tu-usuario/pos-backend/internal/application/report"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CategoryUC  *catalog.CategoryUseCase
	ProductUC   *catalog.ProductUseCase
	CustomerUC  *customer.UseCase
	OrderUC     *order.UseCase
	OrderPDFUC  *order.PDFUseCase
	PaymentUC   *payment.UseCase
	InventoryUC *inventory.UseCase
	ReportUC    *report.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleInventoryOfficer)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	// Categories (lectura para todos; escritura admin/manager)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Post("/", managers, categoryHandler.Create)
	categories.Put("/:id", managers, categoryHandler.Update)
	categories.Delete("/:id", managers, categoryHandler.Delete)

	// Products (lectura para todos; escritura admin/manager/inventory_officer)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.Get)
	products.Get("/:id/barcode", productHandler.Barcode)
	products.Post("/", stockRoles, productHandler.Create)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.OrderUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.Get)
	customers.Get("/:id/orders", customerHandler.Orders)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", managers, customerHandler.Delete)

	// Orders (cualquier usuario autenticado registra ventas)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/number/:number", orderHandler.GetByNumber)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/cancel", managers, orderHandler.Cancel)
	orders.Get("/:id/invoice", orderHandler.Invoice)
	orders.Get("/:id/payment-status", paymentHandler.OrderStatus)

	// Payments
	payments := protected.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.Get)
	payments.Post("/:id/refund", managers, paymentHandler.Refund)

	// Inventory ledger (mutaciones manuales restringidas)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/logs", inventoryHandler.List)
	invGroup.Post("/logs", stockRoles, inventoryHandler.Apply)
	invGroup.Post("/adjust", stockRoles, inventoryHandler.Adjust)
	invGroup.Get("/summary", inventoryHandler.Summary)
	invGroup.Get("/products/:id/history", inventoryHandler.History)

	// Reports (admin/manager)
	reports := protected.Group("/reports", managers)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/payment-methods", reportHandler.PaymentMethods)
}
