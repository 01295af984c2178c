// Command seodemo serves a small site whose head metadata, structured data
// and sitemap are all produced by the seo package.
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/config"
	"github.com/gridatek/go-seo-toolkit/internal/content"
	"github.com/gridatek/go-seo-toolkit/internal/handlers"
	"github.com/gridatek/go-seo-toolkit/internal/observability"
	"github.com/gridatek/go-seo-toolkit/internal/routes"
)

//go:embed site
var siteFS embed.FS

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	site, err := loadSite(cfg, logger)
	if err != nil {
		return err
	}
	handler, err := newRouter(cfg, site, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("seodemo listening", zap.String("base_url", cfg.Site.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// siteSources holds the route table, markdown pages and static assets the
// demo serves.
type siteSources struct {
	table  *routes.Table
	pages  *content.Store
	assets fs.FS
}

// loadSite prefers files on disk and falls back to the embedded site.
func loadSite(cfg config.Config, logger *zap.Logger) (siteSources, error) {
	embedded, err := fs.Sub(siteFS, "site")
	if err != nil {
		return siteSources{}, fmt.Errorf("embedded site: %w", err)
	}

	var table *routes.Table
	if path := cfg.Content.RoutesFile; path != "" && fileExists(path) {
		f, err := os.Open(path)
		if err != nil {
			return siteSources{}, fmt.Errorf("open routes: %w", err)
		}
		defer f.Close()
		table, err = routes.Load(f)
		if err != nil {
			return siteSources{}, err
		}
		logger.Info("loaded routes from disk", zap.String("path", path))
	} else {
		table, err = routes.LoadFS(embedded, "routes.yaml")
		if err != nil {
			return siteSources{}, err
		}
	}

	var pagesFS fs.FS
	if dir := cfg.Content.Dir; dir != "" && dirExists(dir) {
		pagesFS = os.DirFS(dir)
		logger.Info("serving content from disk", zap.String("dir", dir))
	} else {
		pagesFS, err = fs.Sub(embedded, "content")
		if err != nil {
			return siteSources{}, fmt.Errorf("embedded content: %w", err)
		}
	}

	assets, err := fs.Sub(embedded, "assets")
	if err != nil {
		return siteSources{}, fmt.Errorf("embedded assets: %w", err)
	}

	return siteSources{table: table, pages: content.NewStore(pagesFS), assets: assets}, nil
}

func newRouter(cfg config.Config, src siteSources, logger *zap.Logger) (http.Handler, error) {
	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware())
	r.Use(observability.InjectLoggerMiddleware(logger))
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware())
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", handlers.Assets(src.assets)))

	site := handlers.NewSite(src.table, src.pages, tmpl, cfg.SEO, handlers.WithBaseURL(cfg.Site.BaseURL))
	site.Register(r)
	return r, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
