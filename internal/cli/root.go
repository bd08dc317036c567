package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/asad/kitchenstate/internal/config"
	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/httpx"
	"github.com/asad/kitchenstate/internal/logging"
	"github.com/asad/kitchenstate/internal/state"
)

var (
	// Version is set at build time via ldflags.
	// Example: go build -ldflags "-X github.com/asad/kitchenstate/internal/cli.Version=1.0.0"
	Version = "dev"
)

const shutdownTimeout = 10 * time.Second

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kitchenstate",
	Short: "Local store for menu, order and daily recipe data",
	Long: `kitchenstate keeps an app's menu, current order and per-date recipe
lists as JSON documents in a local key-value store.

The store can be served over HTTP (start) or read and written directly with
the menu, order and recipe commands. The backend is chosen with STORAGE_BACKEND.`,
	SilenceUsage: true,
}

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long: `Start the kitchenstate edge server on the configured port.
Enabled services are mounted under /menu, /order and /recipe.`,
	RunE: runStart,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kitchenstate version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newRecipeCmd())
}

// Execute is the entry point for the CLI. It should be called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads and validates configuration and builds the logger.
func setup() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// runStart initializes and starts the HTTP server.
func runStart(cmd *cobra.Command, args []string) (err error) {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting kitchenstate",
		logging.String("version", Version),
		logging.Int("edge_port", cfg.EdgePort),
		logging.String("backend", cfg.StorageBackend),
		logging.String("data_dir", cfg.DataDir),
		logging.String("log_level", cfg.LogLevel),
	)

	st, err := state.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	registry := core.NewRegistry()
	for _, svc := range st.Services() {
		registry.Register(svc)
	}
	logger.Info("registered services",
		logging.Int("count", len(registry.Services())),
		logging.Strings("enabled", cfg.EnabledServices),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.EdgePort),
		Handler:           httpx.NewEdgeRouter(cfg, registry, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening on edge port", logging.String("address", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
