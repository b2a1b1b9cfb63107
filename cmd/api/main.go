// @title           Ferretería API
// @version         1.0
// @description     Facturación, cotizaciones e inventario para una cadena de ferreterías.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/ferreteria-api/docs"
	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
	infrapdf "github.com/jhoicas/ferreteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/ferreteria-api/internal/interfaces/http"
	"github.com/jhoicas/ferreteria-api/pkg/config"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("zona horaria inválida")
	}

	stockUC := inventory.NewStockUseCase(store.tx, store.products, store.movements, log)
	invoiceUC := billing.NewInvoiceUseCase(
		store.tx, stockUC,
		store.products, store.customers, store.branches, store.invoices,
		billing.LedgerConfig{
			DefaultSeries: cfg.Billing.DefaultSeries,
			NumberWidth:   cfg.Billing.NumberWidth,
			TaxPolicy:     pricing.PolicyFromRate(cfg.Billing.TaxRate),
		},
		log,
	)
	quoteUC := billing.NewQuoteUseCase(
		store.tx, invoiceUC,
		store.products, store.customers, store.branches, store.quotes,
		cfg.Billing.QuoteValidityDays, log,
	)
	expiryUC := billing.NewExpiryUseCase(invoiceUC, quoteUC, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Billing.CompanyName,
		NIT:     cfg.Billing.CompanyNIT,
		Address: cfg.Billing.CompanyAddress,
	})

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}, log)

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferretería API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     usecase.NewProductUseCase(store.tx, store.products, stockUC),
		Stock:         stockUC,
		Replenishment: inventory.NewReplenishmentUseCase(store.products),
		CustomerUC:    billing.NewCustomerUseCase(store.customers),
		Invoices:      invoiceUC,
		Quotes:        quoteUC,
		InvoicePDF: billing.NewPDFUseCase(
			store.invoices, store.customers, store.products, store.branches, pdfGenerator,
		),
		PaymentTypes: billing.NewPaymentTypeUseCase(store.paymentTypes),
		Sales:        analytics.NewSalesUseCase(store.reports, loc),
		JWTSecret:    cfg.JWT.Secret,
		ExposeErrors: cfg.App.IsDevelopment(),
		Health:       store.health,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, expiryUC, log)
		if err != nil {
			log.Fatal().Err(err).Msg("programador de vencimientos")
		}
		sched.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
