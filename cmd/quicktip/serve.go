package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/quicktip/internal/catalog"
	"github.com/vango-dev/quicktip/internal/config"
	"github.com/vango-dev/quicktip/pkg/metrics"
	"github.com/vango-dev/quicktip/pkg/server"
)

type serveOptions struct {
	dir         string
	port        int
	host        string
	catalogPath string
	s3URL       string
	watch       bool
	debug       bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page with server-driven tooltips",
		Long: `Serve the demo page and host a tooltip session per browser tab.

Settings come from quicktip.json in --dir when it exists; flags override
them. A catalog adds tips to elements that carry no markup of their own.

Examples:
  quicktip serve
  quicktip serve --port=8080 --catalog=tips.yaml --watch
  quicktip serve --s3=s3://docs-assets/tips.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory containing quicktip.json")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from quicktip.json)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from quicktip.json)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "YAML, JSON or TOML tip catalog file")
	cmd.Flags().StringVar(&opts.s3URL, "s3", "", "Tip catalog in S3 (s3://bucket/key)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the catalog when it changes")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Log client protocol traffic in the browser console")

	return cmd
}

// loadConfig reads quicktip.json from dir, or returns defaults when there
// is none.
func loadConfig(dir string) (*config.Config, error) {
	if !config.Exists(dir) {
		return config.New(), nil
	}
	return config.Load(dir)
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts.dir)
	if err != nil {
		return err
	}

	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.catalogPath != "" {
		cfg.Catalog.Path, cfg.Catalog.S3 = opts.catalogPath, ""
	}
	if opts.s3URL != "" {
		cfg.Catalog.S3, cfg.Catalog.Path = opts.s3URL, ""
	}
	if opts.watch {
		cfg.Catalog.Watch = true
	}
	if opts.debug {
		cfg.Server.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.Default()
	serverOpts := []server.Option{
		server.WithLogger(logger),
		server.WithDispatcherOptions(cfg.DispatcherOptions()...),
		server.WithPanelConfig(cfg.PanelConfig()),
	}
	if cfg.Server.Metrics {
		serverOpts = append(serverOpts, server.WithMetrics(metrics.New(), nil))
	}

	srv := server.New(&server.Config{
		Address:        cfg.Address(),
		PingInterval:   cfg.PingInterval(),
		WriteTimeout:   cfg.WriteTimeout(),
		QueueSize:      cfg.Session.QueueSize,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Debug:          cfg.Server.Debug,
		Title:          "quicktip demo",
	}, demoPage, serverOpts...)

	src, err := catalogSource(cfg, logger)
	if err != nil {
		return err
	}
	if src != nil {
		if cfg.Catalog.Watch {
			go func() {
				if err := srv.WatchCatalog(ctx, src); err != nil {
					logger.Error("catalog watch stopped", "source", src.String(), "error", err)
				}
			}()
		} else {
			c, err := src.Load(ctx)
			if err != nil {
				return err
			}
			srv.SetCatalog(c)
		}
	}

	success("Serving on http://%s", cfg.Address())
	if src != nil {
		info("Catalog: %s", src.String())
	}
	return srv.ListenAndServe(ctx)
}

// catalogSource returns the configured catalog source, or nil.
func catalogSource(cfg *config.Config, logger *slog.Logger) (catalog.Source, error) {
	switch {
	case cfg.Catalog.S3 != "":
		src, err := catalog.NewS3Source(catalog.NewS3Client(cfg.Catalog.Region), cfg.Catalog.S3)
		if err != nil {
			return nil, err
		}
		src.Logger = logger
		return src, nil

	case cfg.Catalog.Path != "":
		src := catalog.NewFileSource(cfg.CatalogPath())
		src.Logger = logger
		return src, nil

	default:
		return nil, nil
	}
}
