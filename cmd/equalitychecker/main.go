package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/isaacphysics/equality-checker/config"
	"github.com/isaacphysics/equality-checker/engine"
	"github.com/isaacphysics/equality-checker/httpapi"
)

const version = "1.0.0"

func main() {
	var (
		port       int
		timeout    time.Duration
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     "equalitychecker",
		Short:   "Judge whether a submitted maths or logic expression matches a reference expression",
		Version: version,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP equivalence-checking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.Port = port
			cfg.RequestTimeout = timeout
			cfg.ConfigFile = configFile
			return runServe(cfg)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", config.Default().Port, "port to listen on")
	serveCmd.Flags().DurationVar(&timeout, "timeout", config.Default().RequestTimeout, "per-request deadline")
	serveCmd.Flags().StringVar(&configFile, "config", "", "optional YAML file for hot-reloadable settings")

	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cfg config.Config) error {
	live := config.NewLive(cfg)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(live.LogLevel())}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	watcher := config.NewWatcher(live, log)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Warn("config watcher exited", "error", err)
		}
	}()

	srv := httpapi.NewServer(engine.New(), live.RequestTimeout, log)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", live.Port()),
		Handler: srv.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "port", live.Port())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
