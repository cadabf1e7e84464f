package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"phase-steganography/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger.Enabled(cmd.Context(), slog.LevelDebug) {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			stegoHandler := handlers.NewStegoHandler(&a.cfg.Stego, a.cfg.MaxUploadMB<<20, a.logger)
			server := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           handlers.NewRouter(stegoHandler, a.cfg.AllowedOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Server starting.",
					slog.String("addr", server.Addr),
					slog.Any("allowed_origins", a.cfg.AllowedOrigins))
				a.logger.Info("API endpoints:",
					slog.String("embed", "POST /api/v1/stego/embed"),
					slog.String("extract", "POST /api/v1/stego/extract"),
					slog.String("convert", "POST /api/v1/audio/convert"),
					slog.String("inspect", "POST /api/v1/audio/inspect"),
					slog.String("health", "GET /api/v1/health"))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			a.logger.Info("Shutting down server.")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}
