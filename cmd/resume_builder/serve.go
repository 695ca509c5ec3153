package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

var (
	serveAddr   string
	serveUpload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and preview server",
	Long:  `Start an HTTP server that exposes the record editing API, the live preview and the export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveUpload, "upload", false, "Save exports requested with ?save=true to S3 instead of the output directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := setup(ctx)
	if err != nil {
		return err
	}
	defer sess.logger.Sync()

	addr := sess.cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	sink, err := sess.sink(context.WithoutCancel(ctx), serveUpload, "")
	if err != nil {
		sess.close() //nolint:errcheck
		return fmt.Errorf("failed to configure export sink: %w", err)
	}

	srv := server.New(sess.ctrl, server.Config{
		Addr:          addr,
		ExportTimeout: sess.cfg.ExportTimeout(),
		Sink:          sink,
		RateLimit:     ratelimit.LoadConfig(os.LookupEnv),
		Notice:        sess.notice,
	}, sess.logger.With("component", "server"))

	// Start closes the controller after shutdown.
	return srv.Start(ctx)
}
