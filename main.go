package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/item-service/cliparse"
	"github.com/danielhkuo/item-service/db"
	"github.com/danielhkuo/item-service/middleware"
	"github.com/danielhkuo/item-service/router"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := cliparse.DefaultConfig()

	root := &cobra.Command{
		Use:           "item-service",
		Short:         "HTTP backend for creating, listing and deleting items in a SQL table",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse configuration
			if err := cliparse.Resolve(cmd.Flags(), &cfg); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cliparse.BindFlags(root.Flags(), &cfg)

	if err := root.Execute(); err != nil {
		slog.Error("item-service failed", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	slog.SetDefault(cfg.Logger(os.Stderr))
	slog.Debug("configuration", "config", cfg.Redacted())

	connector, err := db.NewConnector(cfg)
	if err != nil {
		return err
	}
	store := db.NewStore(connector, cfg)

	// Schema is normally created lazily through /check-db
	if cfg.Bootstrap {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		slog.Info("Database schema ready", "database", connector.String(), "table", cfg.TableName)
	}

	// Create router
	mux := router.NewRouter(store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "addr", server.Addr, "database", connector.String(), "table", cfg.TableName)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	slog.Info("Server closed")
	return nil
}
