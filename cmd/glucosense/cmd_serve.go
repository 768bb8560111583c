package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/form"
	httpapi "github.com/Marvy-ctrl/diabetes-risk-predictor/internal/http"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/report"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/service"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the intake form as a local JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(root)
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			format, err := report.ParseFormat(cfg.Report.Format)
			if err != nil {
				return err
			}

			controller := form.NewController(log)
			intake := httpapi.NewIntakeHandler(controller, newPredictionClient(cfg, log), advice.Default, format, log)

			router := httpapi.NewRouter(log)
			router.RegisterHealthRoutes()
			router.RegisterIntakeRoutes(intake)

			srv := service.NewServer(cfg.HTTP.Addr, router, log)
			return runServer(srv, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HTTP_ADDR)")
	return cmd
}

// runServer 启动服务并在收到 SIGINT/SIGTERM 时优雅退出
func runServer(srv *service.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
			zap.String("addr", srv.Addr()),
		)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.String("addr", srv.Addr()), zap.Error(err))
			return err
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop HTTP server", zap.Error(err))
		return err
	}
	return nil
}
