package main

import (
	"github.com/jonathan/shorts-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes stateless optimization and a shared session with server-sent events.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, else 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	opt, closeFn, err := newOptimizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	srv := server.New(server.Config{Port: cfg.Port}, opt)
	return srv.Start(ctx)
}
