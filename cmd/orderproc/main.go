package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toyland-orders/internal/audit"
	"github.com/noah-isme/toyland-orders/internal/batch"
	"github.com/noah-isme/toyland-orders/internal/config"
	"github.com/noah-isme/toyland-orders/internal/discount"
	"github.com/noah-isme/toyland-orders/internal/events"
	"github.com/noah-isme/toyland-orders/internal/ingest"
	"github.com/noah-isme/toyland-orders/internal/inventory"
	"github.com/noah-isme/toyland-orders/internal/obs"
	"github.com/noah-isme/toyland-orders/internal/pipeline"
	"github.com/noah-isme/toyland-orders/internal/shipping"
)

func main() {
	inputPath := flag.String("input", "", "path to the orders CSV file (overrides ORDERS_INPUT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}

	batchID := uuid.New()
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().
		Str("env", cfg.AppEnv).
		Str("batch_id", batchID.String()).
		Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	fmt.Println("Contoso Toyland - holiday batch order pricer")
	logger.Info().Str("input", cfg.InputPath).Msg("batch processing started")

	records, err := ingest.NewReader().ReadFile(cfg.InputPath)
	if err != nil {
		logger.Error().Err(err).Msg("read orders")
		os.Exit(1)
	}

	var notifiers []events.Notifier
	if cfg.AuditEnabled {
		trail, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			logger.Error().Err(err).Msg("open audit trail")
			os.Exit(1)
		}
		defer func() {
			if err := trail.Close(); err != nil {
				logger.Error().Err(err).Msg("close audit trail")
			}
		}()
		notifiers = append(notifiers, audit.Notifier{Service: audit.Service{Trail: trail, Enabled: true}})
	}
	bus := &events.Bus{BatchID: batchID, Notifiers: notifiers}

	provider := discount.NewLazyProvider(func(context.Context) (discount.Config, error) {
		return discount.NewConfig(cfg.DiscountBaseRate, cfg.MaxDiscount, cfg.BonusCategories), nil
	})
	pipe := &pipeline.Pipeline{
		Inventory: inventory.Checker{Log: logger.With().Str("component", "inventory").Logger()},
		Discounts: &discount.Engine{
			Provider: provider,
			Ledger:   discount.NewLedger(),
			Log:      logger.With().Str("component", "discount").Logger(),
		},
		Shipping: shipping.Calculator{Base: cfg.ShippingBase, PerItem: cfg.ShippingPerItem},
		TaxRate:  cfg.TaxRate,
		Log:      logger.With().Str("component", "pipeline").Logger(),
	}
	runner := &batch.Runner{
		Pipeline: pipe,
		Bus:      bus,
		Log:      logger.With().Str("component", "batch").Logger(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, records)
	if err != nil {
		logger.Error().Err(err).Msg("batch failed")
		os.Exit(1)
	}

	fmt.Println("Processing complete!")
	fmt.Printf("  Total Orders: %d\n", summary.Total)
	fmt.Printf("  Successful:   %d\n", summary.Succeeded)
	fmt.Printf("  Failed:       %d\n", summary.Failed)
}

func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics listener")
	}
}
