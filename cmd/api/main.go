package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pmt-online/magazin-api/internal/application/billing"
	"github.com/pmt-online/magazin-api/internal/application/usecase"
	"github.com/pmt-online/magazin-api/internal/infrastructure/anaf"
	infrapdf "github.com/pmt-online/magazin-api/internal/infrastructure/pdf"
	"github.com/pmt-online/magazin-api/internal/infrastructure/postgres"
	httpRouter "github.com/pmt-online/magazin-api/internal/interfaces/http"
	"github.com/pmt-online/magazin-api/pkg/config"
	"github.com/pmt-online/magazin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("încărcare configurație: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("serie", cfg.EFactura.DefaultSeries).
		Msg("pornire aplicație")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexiune la PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)

	ublBuilder := anaf.NewUBLBuilder()
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, customerRepo, productRepo,
		ublBuilder, cfg.Supplier, cfg.EFactura, log,
	)
	invoiceQueryUC := billing.NewInvoiceQueryUseCase(invoiceRepo)

	// PDF: reprezentarea grafică a facturii
	pdfRenderer := infrapdf.NewInvoiceRenderer()
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, pdfRenderer)

	anafUC := billing.NewAnafUseCase(invoiceRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		CreateInvoice: createInvoiceUC,
		InvoiceQuery:  invoiceQueryUC,
		InvoicePDF:    invoicePDFUC,
		AnafUC:        anafUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP încheiat")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("semnal de oprire primit, închidem serverul...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("oprire server")
	}

	log.Info().Msg("aplicație oprită")
}
