package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveDatabase bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Long: `Serve starts a JSON HTTP server with the analysis endpoints.
With --database the ignore-lists and linked mentions are stored in Postgres
configured through the MENTIONER_DB_* variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMentioner()
		defer m.Close()

		if serveDatabase {
			dbConfig, err := helper.NewDatabaseConfiguration()
			if err != nil {
				fatal("Failed to read database configuration", err)
			}
			if err := m.WithDatabase(dbConfig); err != nil {
				fatal("Failed to connect database", err)
			}
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           server.NewHandler(m, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Shutdown failed", slog.String("error", err.Error()))
			}
		}()

		logger.Info("Listening", slog.String("addr", serveAddr), slog.Any("languages", m.Languages()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", err)
		}
		logger.Info("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().BoolVar(&serveDatabase, "database", false, "Store ignore-lists and mentions in Postgres")
}
