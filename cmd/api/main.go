package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/pos-backend/internal/application/auth"
	"github.com/tu-usuario/pos-backend/internal/application/catalog"
	"github.com/tu-usuario/pos-backend/internal/application/customer"
	"github.com/tu-usuario/pos-backend/internal/application/inventory"
	"github.com/tu-usuario/pos-backend/internal/application/order"
	"github.com/tu-usuario/pos-backend/internal/application/payment"
	"github.com/tu-usuario/pos-backend/internal/application/report"
	infrabarcode "github.com/tu-usuario/pos-backend/internal/infrastructure/barcode"
	"github.com/tu-usuario/pos-backend/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/pos-backend/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-backend/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-backend/internal/interfaces/http"
	"github.com/tu-usuario/pos-backend/pkg/config"
	"github.com/tu-usuario/pos-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	logRepo := postgres.NewInventoryLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Adaptadores de infraestructura: PDF de factura, código de barras y correo.
	pdfGenerator := infrapdf.NewMarotoOrderGenerator(cfg.App.Name)
	barcodeGen := infrabarcode.NewCode128Generator()
	var mailer order.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewGomailSender(cfg.SMTP)
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, categoryRepo, barcodeGen)
	customerUC := customer.NewUseCase(customerRepo)
	orderUC := order.NewUseCase(txRunner, orderRepo, productRepo, customerRepo, mailer)
	orderPDFUC := order.NewPDFUseCase(orderUC, pdfGenerator)
	paymentUC := payment.NewUseCase(txRunner, paymentRepo, orderRepo)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, logRepo)
	reportUC := report.NewUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Backend API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		OrderUC:     orderUC,
		OrderPDFUC:  orderPDFUC,
		PaymentUC:   paymentUC,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
