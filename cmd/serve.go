package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/server"
	"github.com/qmat-labs/corridor-cli/internal/store"
)

var (
	servePort    int
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diagnostics HTTP API",
	Long:  "Serves mixing, classification, case-table, and element endpoints over JSON, plus an HTML chart report. Reference tables are reloaded on a TTL; run history is served from the configured store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cl, err := loadClassifier()
		if err != nil {
			return err
		}

		var runs store.Store
		if !serveNoStore {
			runs, err = openStore(ctx)
			if err != nil {
				// The calculator endpoints work without run history.
				zap.L().Warn("run store unavailable", zap.Error(err))
			} else {
				defer runs.Close() //nolint:errcheck
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.New(cfg, cl, runs).Router(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "serve without a run store")
	rootCmd.AddCommand(serveCmd)
}
