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

	"archcost/internal/analysis"
	"archcost/internal/config"
	"archcost/internal/docgen"
	"archcost/internal/estimate"
	"archcost/internal/logging"
	"archcost/internal/pricing"
	"archcost/internal/server"
	"archcost/internal/store"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the estimation HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.Logging, os.Stderr)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Info().Msg("shutdown signal received")
		cancel()
	}()

	var analyzer analysis.Analyzer
	if cfg.Analysis.Endpoint != "" {
		analyzer = analysis.NewHTTPAnalyzer(cfg.Analysis.Endpoint, nil, logger)
	} else {
		logger.Warn().Msg("no analysis endpoint configured; diagram uploads will be rejected")
		analyzer = analysis.Unconfigured()
	}

	rates := pricing.NewClient(logger)
	calc := estimate.NewCalculator(rates, logger)
	batch := docgen.NewBatchGenerator(
		docgen.NewTemplateGenerator(),
		docgen.NewMarkdownRenderer(),
		docgen.BatchConfig{
			MaxAttempts:   cfg.Docgen.MaxAttempts,
			BaseDelay:     cfg.Docgen.BaseDelay.Std(),
			InterDocDelay: cfg.Docgen.InterDocDelay.Std(),
			CallTimeout:   cfg.Docgen.CallTimeout.Std(),
		},
		logger,
	)

	srv := server.New(ctx, server.Options{
		Region:          cfg.Server.Region,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		AnalysisTimeout: cfg.Analysis.Timeout.Std(),
	}, calc, analyzer, batch, store.New(), server.NewMetrics(), logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
