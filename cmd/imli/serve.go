package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/imli-ai/imli/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Imli web server",
	Long: `Start the Imli HTTP server.

The server provides:
  - /           - Analyzer form: paste a decision URL, get a case overview
  - /api/cases  - JSON API: POST {"url": "..."} returns the case record
  - /health     - Basic server health check

Examples:
  imli serve                     # Start on default port 8080
  imli serve --port 3000         # Start on custom port
  imli serve --host 0.0.0.0      # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(slog.LevelInfo)

		processor, mgr, err := buildProcessor(logger)
		if err != nil {
			return err
		}

		// Pick up config edits without a restart
		mgr.WatchConfig()

		cfg := mgr.Get()
		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:      host,
			Port:      port,
			Processor: processor,
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
