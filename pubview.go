// Package pubview serves the presentation layer of a blog built with Go,
// Echo, and templ: a home page of recent posts, tag-filtered paginated
// lists, post pages, feeds and a sitemap over content produced by an
// external pipeline.
//
// Callers may swap any page component through ViewFuncs; pubview handles
// the handler logic, middleware, storage and content import.
package pubview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/eringen/pubview/views"
)

// ViewFuncs holds the templ components rendered by the handlers.
type ViewFuncs struct {
	Home        func(env views.Env, posts []Post) templ.Component
	TaggedList  func(env views.Env, props views.ListProps) templ.Component
	Post        func(env views.Env, post Post) templ.Component
	TagIndex    func(env views.Env, counts map[string]int) templ.Component
	NotFound    func(env views.Env) templ.Component
	ServerError func(env views.Env) templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		TaggedList:  views.TaggedList,
		Post:        views.PostPage,
		TagIndex:    views.TagIndex,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App wires together the store, cache, handlers, middleware and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	registry        *prometheus.Registry
	metrics         *metrics
	images          *ImageSizer
	customRoutes    []func(*App)
	staticDir       string
	stopWatch       func()
	shutdownTracing func(context.Context) error
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		registry:  reg,
		metrics:   newMetrics(reg),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	a.images = NewImageSizer(a.staticDir)

	return a
}

// Setup opens the store, imports content when configured, and mounts
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup(ctx context.Context) error {
	if a.Config.SessionSecret == "" {
		return errors.New("pubview: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pubview: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	shutdown, err := setupTracing(ctx, a.Config)
	if err != nil {
		return fmt.Errorf("pubview: init tracing: %w", err)
	}
	a.shutdownTracing = shutdown

	if dir := a.Config.ContentDir; dir != "" {
		if err := a.ImportContent(ctx, dir); err != nil {
			return fmt.Errorf("pubview: import content: %w", err)
		}
		if a.Config.ContentWatch {
			stop, err := a.watchContent(dir)
			if err != nil {
				return fmt.Errorf("pubview: %w", err)
			}
			a.stopWatch = stop
		}
	} else if n, err := a.Store.CountPosts(ctx); err == nil {
		a.metrics.postsLoaded.Set(float64(n))
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the App up and serves HTTP until the server stops.
func (a *App) Start() error {
	if err := a.Setup(context.Background()); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stylesheet, then the user's static dir and imported assets.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.Static("/static", filepath.Join(a.staticDir, "static"))

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/atom.xml", a.handleAtom)
	e.GET("/healthz", a.handleHealth)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.registry}))

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/page/:page", a.handleBlogPage)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/tags/:tag/page/:page", a.handleTagPage)
	e.POST("/theme/", a.handleTheme)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	var err error
	if a.shutdownTracing != nil {
		err = a.shutdownTracing(context.Background())
	}
	if a.Store != nil {
		err = errors.Join(err, a.Store.Close())
	}
	return err
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("pubview: required environment variable %s is not set", key)
	}
	return v
}
