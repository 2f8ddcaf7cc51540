package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finreport/internal/amqp"
	"finreport/internal/backend"
	"finreport/internal/config"
	"finreport/internal/log"
	"finreport/internal/providers"
	"finreport/internal/report"
	"finreport/internal/services"
	"finreport/internal/storage"
)

func main() {
	// .env is optional; real environments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger := log.New(log.ParseLevel(cfg.LogLevel))
	log.SetDefault(logger)

	var (
		kind     = flag.String("report", "dashboard", "report to produce: dashboard, spending, cashback")
		timeArg  = flag.String("time", time.Now().Format("2006-01-02 15:04:05"), "dashboard timestamp (YYYY-MM-DD HH:MM:SS)")
		category = flag.String("category", "", "category for the spending report")
		date     = flag.String("date", "", "target date for the spending report (YYYY-MM-DD, default today)")
		year     = flag.Int("year", 0, "year for the cashback report")
		month    = flag.Int("month", 0, "month for the cashback report (1-12)")
		out      = flag.String("out", "", "spending artifact path; {timestamp} is substituted at write time")
	)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", "error", err)
		os.Exit(1)
	}
	source, err := backend.New(ctx, backendCfg, logger.Logger)
	if err != nil {
		logger.Error("failed to initialize row source", "error", err)
		os.Exit(1)
	}

	settings := config.LoadUserSettings(cfg.SettingsPath)

	sink := storage.NewFileSink(cfg.ReportFile)

	var archive *storage.ReportArchive
	if cfg.SQLiteDBPath != "" {
		archive, err = storage.NewReportArchive(cfg.SQLiteDBPath)
		if err != nil {
			logger.Warn("report archive unavailable, continuing without it", "error", err)
			archive = nil
		}
	}

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("event publisher unavailable, continuing without it", "error", err)
			events = nil
		}
	}

	builder := report.NewDashboardBuilder(
		providers.NewExchangeRatesClient(cfg.CurrencyAPIKey),
		providers.NewAlphaVantageClient(cfg.StockAPIKey, logger.WithComponent("stocks")),
		settings.UserCurrencies,
		settings.UserStocks,
		logger.WithComponent("dashboard"),
	)

	svc := services.NewReportService(source, builder, sink, archive, events, logger.Logger)
	defer svc.Close()

	switch *kind {
	case "dashboard":
		d, err := svc.Dashboard(ctx, *timeArg)
		exitOnError(logger, err)
		printJSON(d)
	case "spending":
		if *category == "" {
			logger.Error("the spending report requires -category")
			os.Exit(2)
		}
		rep, err := svc.SpendingByCategory(ctx, *category, *date, *out)
		exitOnError(logger, err)
		printJSON(rep)
	case "cashback":
		rep, err := svc.CashbackByCategory(ctx, *year, *month)
		exitOnError(logger, err)
		printJSON(rep)
	default:
		logger.Error("unknown report", "report", *kind)
		os.Exit(2)
	}
}

func exitOnError(logger *log.Logger, err error) {
	if err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode report:", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
