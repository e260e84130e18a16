package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Serve")
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.Addr()
		if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
			addr = flag
		}

		gin.SetMode(gin.ReleaseMode)
		router, stopRouter, err := a.Router(cmdContext(cmd))
		if err != nil {
			return err
		}
		defer stopRouter()

		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "Listening on http://%s\n", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
