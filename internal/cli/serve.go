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

	"github.com/itchan-dev/tgchan/internal/router"
	"github.com/itchan-dev/tgchan/internal/setup"
	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service the Mini-App talks to",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	deps := setup.SetupDependencies(cfg)
	defer deps.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Public.Server.Port),
		Handler:           router.New(deps),
		ReadTimeout:       cfg.Public.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Public.Server.ReadTimeout,
		WriteTimeout:      cfg.Public.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("server started",
			"component", "server",
			"addr", srv.Addr,
			"proxies", len(cfg.Public.Proxies),
			"dev_mode", cfg.Public.DevMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutting down", "component", "server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("server stopped with error", "component", "server", "error", err)
		return err
	}
	return nil
}
