package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/evdnx/gosb/config"
	"github.com/evdnx/gosb/engine"
	"github.com/evdnx/gosb/exchange"
	"github.com/evdnx/gosb/history"
	"github.com/evdnx/gosb/logger"
	"github.com/evdnx/gosb/notify"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gosb",
	Short: "Spot-trading decision engine with quorum signal voting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
}

func run() error {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	log, err := logger.NewZapLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ex := exchange.NewBinance(cfg.ExchangeBaseURL, os.Getenv("API_KEY"), os.Getenv("API_SECRET"))

	// The only failure that terminates the process: the venue must be
	// reachable before any trading state is built.
	pingCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := ex.Ping(pingCtx); err != nil {
		return fmt.Errorf("exchange unreachable: %w", err)
	}

	store, err := history.NewSQLite(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	notifier := notify.NewTelegram(os.Getenv("TOKEN"), os.Getenv("CHAT_ID"), log)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error("metrics_server_failed", logger.Err(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(cfg, ex, store, notifier, log)
	return eng.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
