package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/server"
	"github.com/jonathan/resume-scorer/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing scoring, analysis and taxonomy endpoints.

Set JWT_SECRET to require a bearer token on the POST endpoints.`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	jwtCfg, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	srv := server.New(eng, server.Config{
		Port:         cfg.Port,
		Workers:      cfg.Workers,
		TaxonomyPath: cfg.TaxonomyPath,
		JWT:          jwtCfg,
		RateLimit:    ratelimit.LoadConfig(),
	})
	return srv.Start()
}
