// Package articlepage serves single article pages backed by a headless CMS,
// built with Go, Echo, and templ.
//
// Users provide their own templ components via the ViewFuncs struct, and
// articlepage handles fetching the entry, tracking the page state and
// choosing what to render for it.
package articlepage

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eringen/articlepage/article"
	"github.com/eringen/articlepage/contentful"
	"github.com/eringen/articlepage/richtext"
	"github.com/eringen/articlepage/views"
)

// ViewFuncs holds the components the framework calls when rendering an
// article. Nil fields fall back to the views package defaults.
type ViewFuncs struct {
	MetaTags       func(article.MetaTags) templ.Component
	StructuredData func(article.StructuredData) templ.Component
	Hero           func(article.Hero) templ.Component
	RichText       func(richtext.Document) templ.Component
	Divider        func() templ.Component
	Comments       func(article.Comments) templ.Component
	Document       func(head, body templ.Component) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the views package components bound to cfg.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	site := views.Site{
		Name:            cfg.Name,
		URL:             cfg.URL,
		Description:     cfg.Description,
		Lang:            cfg.Lang,
		DisqusShortname: cfg.DisqusShortname,
	}
	return ViewFuncs{
		MetaTags: func(m article.MetaTags) templ.Component {
			return views.MetaTags(site, m)
		},
		StructuredData: func(d article.StructuredData) templ.Component {
			return views.StructuredData(site, d)
		},
		Hero:     views.Hero,
		RichText: richtext.Component,
		Divider:  views.Divider,
		Comments: func(c article.Comments) templ.Component {
			return views.Comments(site, c)
		},
		Document: func(head, body templ.Component) templ.Component {
			return views.Document(site, head, body)
		},
		NotFound:    func() templ.Component { return views.NotFound(site) },
		ServerError: func() templ.Component { return views.ServerError(site) },
	}
}

func (v *ViewFuncs) fill(d ViewFuncs) {
	if v.MetaTags == nil {
		v.MetaTags = d.MetaTags
	}
	if v.StructuredData == nil {
		v.StructuredData = d.StructuredData
	}
	if v.Hero == nil {
		v.Hero = d.Hero
	}
	if v.RichText == nil {
		v.RichText = d.RichText
	}
	if v.Divider == nil {
		v.Divider = d.Divider
	}
	if v.Comments == nil {
		v.Comments = d.Comments
	}
	if v.Document == nil {
		v.Document = d.Document
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central articlepage application. It wires together the content
// source, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source article.Source
	Views  ViewFuncs

	limiter      *VisitorLimiter
	metrics      *prometheus.Registry
	formatDate   func(string) string
	customRoutes []func(*App)
	staticDir    string

	setupOnce sync.Once
	setupErr  error
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	views.fill(DefaultViews(cfg))

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		metrics:   prometheus.NewRegistry(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start connects the content source, installs middleware and routes, and
// starts the server.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the fully wired HTTP handler without starting a listener.
func (a *App) Handler() (http.Handler, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	return a.Echo, nil
}

func (a *App) setup() error {
	a.setupOnce.Do(func() {
		if a.Source == nil {
			src, err := NewContentfulSource(a.Config)
			if err != nil {
				a.setupErr = fmt.Errorf("articlepage: init content source: %w", err)
				return
			}
			a.Source = src
		}

		a.limiter = NewVisitorLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst, 10*time.Minute)

		a.setupMiddleware()
		a.setupRoutes()

		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
	return a.setupErr
}

// NewContentfulSource builds the article source described by the Contentful
// fields of cfg.
func NewContentfulSource(cfg SiteConfig) (*article.ContentfulSource, error) {
	cfg.setDefaults()
	client, err := contentful.New(contentful.Config{
		SpaceID:     cfg.ContentfulSpaceID,
		AccessToken: cfg.ContentfulAccessToken,
		Environment: cfg.ContentfulEnvironment,
		BaseURL:     cfg.ContentfulHost,
		Timeout:     cfg.FetchTimeout,
	})
	if err != nil {
		return nil, err
	}
	src := article.NewContentfulSource(client)
	src.Locale = cfg.ContentfulLocale
	return src, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", handleHealthz)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, a.metrics},
	}))

	e.GET("/articles", handleArticlesRedirect)
	e.GET("/articles/:slug/", a.handleArticle, a.limiter.Middleware())
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	return a.Echo.Close()
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
		log.Fatalf("articlepage: required environment variable %s is not set", key)
	}
	return v
}
