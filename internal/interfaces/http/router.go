package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	CustomerUC    *billing.CustomerUseCase
	Invoices      *billing.InvoiceUseCase
	Quotes        *billing.QuoteUseCase
	InvoicePDF    *billing.PDFUseCase
	PaymentTypes  *billing.PaymentTypeUseCase
	Sales         *analytics.SalesUseCase
	JWTSecret     string
	// ExposeErrors muestra el detalle de errores internos (solo development).
	ExposeErrors bool
	// Health verifica el almacenamiento; nil = siempre sano.
	Health func(ctx context.Context) error
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name         string
	AllowOrigins string
}

// NewApp crea la app Fiber con los middlewares comunes (recover, request id, CORS, log de requests).
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Los IDs de la ruta terminan guardados en entidades (referencia de movimientos).
		Immutable:    true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	app.Use(RequestLogger(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorResponder{exposeInternal: deps.ExposeErrors}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	need := RequireCapability

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, errs)
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Replenishment, errs)
	products.Get("/low-stock", need(access.ProductRead), inventoryHandler.LowStock)
	products.Post("/", need(access.ProductCreate), productHandler.Create)
	products.Get("/", need(access.ProductRead), productHandler.List)
	products.Get("/:id", need(access.ProductRead), productHandler.GetByID)
	products.Put("/:id", need(access.ProductUpdate), productHandler.Update)
	products.Delete("/:id", need(access.ProductDelete), productHandler.Delete)
	products.Patch("/:id/stock", need(access.StockAdjust), inventoryHandler.AdjustStock)
	products.Get("/:id/movements", need(access.ProductRead), inventoryHandler.Movements)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, errs)
	customers.Post("/", need(access.CustomerCreate), customerHandler.Create)
	customers.Get("/", need(access.CustomerRead), customerHandler.List)
	customers.Get("/:id", need(access.CustomerRead), customerHandler.GetByID)
	customers.Put("/:id", need(access.CustomerUpdate), customerHandler.Update)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.InvoicePDF, deps.PaymentTypes, errs)
	invoices.Post("/", need(access.InvoiceCreate), invoiceHandler.Create)
	invoices.Get("/", need(access.InvoiceRead), invoiceHandler.List)
	invoices.Get("/:id", need(access.InvoiceRead), invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", need(access.InvoiceRead), invoiceHandler.DownloadPDF)
	invoices.Post("/:id/void", need(access.InvoiceVoid), invoiceHandler.Void)
	protected.Get("/payment-types", invoiceHandler.PaymentTypes)

	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.Quotes, errs)
	quotes.Post("/", need(access.QuoteCreate), quoteHandler.Create)
	quotes.Get("/", need(access.QuoteRead), quoteHandler.List)
	quotes.Get("/:id", need(access.QuoteRead), quoteHandler.GetByID)
	quotes.Put("/:id/lines", need(access.QuoteUpdate), quoteHandler.Recalculate)
	quotes.Patch("/:id/status", need(access.QuoteUpdate), quoteHandler.ChangeStatus)
	quotes.Post("/:id/convert", need(access.QuoteConvert), quoteHandler.Convert)

	reportHandler := NewReportHandler(deps.Sales, errs)
	protected.Get("/reports/sales", need(access.ReportRead), reportHandler.Sales)
}
