package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/app"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
)

// session holds what every command needs once the stored record is loaded.
type session struct {
	cfg    config.Config
	logger *logging.Logger
	engine *rendering.Engine
	ctrl   *app.Controller
	notice string
}

// loadSettings resolves configuration: config file, then environment, then defaults. Flags win over all.
func loadSettings() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openStore connects to PostgreSQL when a database URL is configured, otherwise uses the file store.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := storage.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store, nil
	}
	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	return store, nil
}

// setup builds the session and loads the stored record.
func setup(ctx context.Context) (*session, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogMode, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	engine, err := rendering.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	target := export.NewChromeTarget(cfg.ExportTimeout())
	if cfg.ChromePath != "" {
		target.ExecPath = cfg.ChromePath
	}
	pipeline := export.NewPipeline(engine, target,
		export.WithSettleDelay(cfg.SettleDelay()),
		export.WithLogger(logger.With("component", "export")))

	ctrl := app.New(engine, store,
		app.WithLogger(logger.With("component", "controller")),
		app.WithExporter(pipeline),
		app.WithKey(cfg.StoreKey),
		app.WithSaveDelay(cfg.SaveDelay()))

	notice, err := ctrl.Load(ctx)
	if err != nil {
		ctrl.Close() //nolint:errcheck
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, engine: engine, ctrl: ctrl, notice: notice}, nil
}

// close persists pending edits and releases the store.
func (rt *session) close() error {
	defer rt.logger.Sync()
	return rt.ctrl.Close()
}

// sink returns the upload destination when S3 is configured, otherwise the output directory.
func (rt *session) sink(ctx context.Context, upload bool, dir string) (export.Sink, error) {
	if !upload {
		if dir == "" {
			dir = rt.cfg.OutputDir
		}
		return export.FileSink{Dir: dir}, nil
	}
	if !rt.cfg.S3.Enabled() {
		return nil, fmt.Errorf("upload requested but no S3 bucket is configured (set S3_BUCKET)")
	}
	s3 := rt.cfg.S3
	return export.NewS3Sink(ctx, export.S3Config{
		Bucket:    s3.Bucket,
		Prefix:    s3.Prefix,
		Region:    s3.Region,
		Endpoint:  s3.Endpoint,
		AccountID: s3.AccountID,
		AccessKey: s3.AccessKey,
		SecretKey: s3.SecretKey,
	})
}

// warnNotice prints the load notice, if any.
func (rt *session) warnNotice(w io.Writer) {
	if rt.notice != "" {
		fmt.Fprintf(w, "Warning: %s\n", rt.notice) //nolint:errcheck
	}
}
