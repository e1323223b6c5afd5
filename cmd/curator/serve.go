package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/curriculum-curator/internal/db"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/server"
)

// cacheSweepInterval is how often expired Postgres cache rows are deleted.
const cacheSweepInterval = time.Hour

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing document processing, curriculum generation, section resources and topic search.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srvCfg := server.Config{
		Port:     cfg.Port,
		Pipeline: a.pipeline,
		Log:      a.log,
	}
	if a.generator != nil {
		srvCfg.Generator = a.generator
	}
	if a.db != nil {
		srvCfg.Documents = a.db
		go sweepExpiredCache(ctx, a.db, a.log)
	}
	if a.pipeline.Matcher == nil {
		a.log.Warn("semantic video matching disabled; set GEMINI_API_KEY and YOUTUBE_API_KEY to enable it")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}

func sweepExpiredCache(ctx context.Context, database *db.DB, log *observability.Logger) {
	ticker := time.NewTicker(cacheSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := database.DeleteExpired(ctx)
			if err != nil {
				log.Warn("cache sweep failed", "error", err)
				continue
			}
			log.Debug("cache sweep", "deleted", n)
		}
	}
}
