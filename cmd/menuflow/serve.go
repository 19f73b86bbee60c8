package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "menuflow/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the engine in server mode, exposing the session JSON API and Prometheus metrics over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, cfg, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error initializing menuflow: %v\n", err)
			os.Exit(1)
		}

		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = cfg.Server.Listen
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", httpadapter.NewHandler(app, nil))

		srv := &http.Server{
			Addr:    listen,
			Handler: mux,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting menuflow server on %s\n", srv.Addr)
			fmt.Printf("Serving manifest: %s\n", cfg.Manifest.Path)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Menuflow server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
}
