package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/pubview"
	"github.com/eringen/pubview/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: pubview import <export-dir>")
			os.Exit(1)
		}
		if err := runImport(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("pubview %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	app := pubview.New(pubview.LoadConfig())
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runImport(dir string) error {
	cfg := pubview.LoadConfig()
	store, err := pubview.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	exp, err := pubview.Import(context.Background(), store, dir)
	if err != nil {
		return err
	}
	if err := content.CopyAssets(dir, "public"); err != nil {
		return err
	}
	fmt.Printf("Imported %d posts and %d tags from %s\n", len(exp.Posts), len(exp.Tags), dir)
	return nil
}

func printUsage() {
	fmt.Println(`pubview - A blog presentation server built with Go, Echo, and templ

Usage:
  pubview <command> [arguments]

Commands:
  serve         Serve the blog (default)
  import <dir>  Load a content pipeline export into the database
  version       Print the pubview version
  help          Show this help message

Configuration is read from the environment and an optional .env file:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR, SITE_LOCALE,
  ADDR, DATABASE_PATH, CONTENT_DIR, CONTENT_WATCH, POSTS_PER_PAGE,
  POST_CACHE_TTL, SESSION_SECRET, COOKIE_SECURE, OTEL_EXPORTER_OTLP_ENDPOINT

Examples:
  pubview import ./export
  SESSION_SECRET=change-me pubview serve`)
}
