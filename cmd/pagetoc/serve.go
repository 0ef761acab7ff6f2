package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pagetoc/internal/api"
	"github.com/dgallion1/pagetoc/internal/pipeline"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.Port = servePort
		}
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default $PORT or 8091)")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	log := newLogger(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := pageOptions(false)

	orch := pipeline.NewOrchestrator(pipeline.Settings{
		WorkerCount:  cfg.WorkerCount,
		MaxQueueSize: cfg.MaxQueueSize,
		JobTTL:       cfg.JobTTL,
	}, opts, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, opts, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown. The pipeline stops only after Shutdown has drained
	// in-flight handlers, so no request can submit into a closed queue.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	if cfg.APIKey == "" {
		log.Warn("PAGETOC_API_KEY not set, API is unauthenticated")
	}
	log.Info("starting pagetoc", "port", cfg.Port, "container", cfg.ContainerID)
	err := httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-shutdownDone
		orch.Stop()
		return err
	}
	<-shutdownDone
	orch.Stop()
	return nil
}
