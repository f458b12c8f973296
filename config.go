package articlepage

import (
	"time"

	"github.com/eringen/articlepage/article"
	"github.com/eringen/articlepage/contentful"
)

// SiteConfig holds all configuration for an article site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Fallback meta description
	Author      string // Byline and JSON-LD author (default "Anonymous")
	AuthorURL   string // Byline link target
	Lang        string // html lang attribute (default "en")

	Addr string // Listen address (default ":3000")

	ContentfulSpaceID     string // Required unless a Source is given
	ContentfulAccessToken string // Required unless a Source is given
	ContentfulEnvironment string // default "master"
	ContentfulHost        string // CDA base URL (default contentful.DeliveryURL)
	ContentfulLocale      string

	DisqusShortname string // Comments are omitted when empty

	FetchTimeout time.Duration // Content query timeout (default 10s)

	RateLimitRPS   float64 // Article requests per second per visitor (default 5)
	RateLimitBurst int     // default 20
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Author == "" {
		c.Author = "Anonymous"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentfulEnvironment == "" {
		c.ContentfulEnvironment = "master"
	}
	if c.ContentfulHost == "" {
		c.ContentfulHost = contentful.DeliveryURL
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.RateLimitRPS == 0 {
		c.RateLimitRPS = 5
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 20
	}
}

func (c SiteConfig) author() article.Author {
	return article.Author{Name: c.Author, URL: c.AuthorURL}
}

// Option configures additional App behavior.
type Option func(*App)

// WithSource replaces the Contentful source, e.g. with a fixture in tests.
func WithSource(src article.Source) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithDateFormatter overrides how publish dates appear in the hero.
func WithDateFormatter(fn func(string) string) Option {
	return func(a *App) {
		a.formatDate = fn
	}
}
