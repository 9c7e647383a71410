package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"calplan/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Long: `Start the minimal web front end: a single-field form on / that posts
free-text commands to /process-command and renders the JSON result.

Also exposes /test-events (connectivity check), /healthz and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = a.cfg.Listen
			}

			srv := server.New(a.interpreter, a.calendar)

			serverDone := make(chan error, 1)
			go func() {
				defer close(serverDone)
				if err := srv.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverDone <- err
				}
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(),
					server.DefaultShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("error shutting down web server: %w", err)
				}
				return nil
			case err := <-serverDone:
				if err != nil {
					return fmt.Errorf("web server stopped with error: %w", err)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides CALPLAN_LISTEN, default 127.0.0.1:8080)")
	return cmd
}
