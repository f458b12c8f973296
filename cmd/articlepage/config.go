package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eringen/articlepage"
)

func loadConfig() (articlepage.SiteConfig, error) {
	cfg := articlepage.SiteConfig{
		Name:        articlepage.EnvOr("SITE_NAME", "Blog"),
		URL:         articlepage.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: articlepage.EnvOr("SITE_DESCRIPTION", ""),
		Author:      articlepage.EnvOr("SITE_AUTHOR", ""),
		AuthorURL:   articlepage.EnvOr("SITE_AUTHOR_URL", ""),
		Lang:        articlepage.EnvOr("SITE_LANG", "en"),
		Addr:        articlepage.EnvOr("ADDR", ":3000"),

		ContentfulSpaceID:     articlepage.MustEnv("CONTENTFUL_SPACE_ID"),
		ContentfulAccessToken: articlepage.MustEnv("CONTENTFUL_ACCESS_TOKEN"),
		ContentfulEnvironment: articlepage.EnvOr("CONTENTFUL_ENVIRONMENT", "master"),
		ContentfulHost:        articlepage.EnvOr("CONTENTFUL_HOST", ""),
		ContentfulLocale:      articlepage.EnvOr("CONTENTFUL_LOCALE", ""),

		DisqusShortname: articlepage.EnvOr("DISQUS_SHORTNAME", ""),
	}

	var err error
	if cfg.FetchTimeout, err = time.ParseDuration(articlepage.EnvOr("FETCH_TIMEOUT", "10s")); err != nil {
		return cfg, fmt.Errorf("FETCH_TIMEOUT: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(articlepage.EnvOr("RATE_LIMIT_RPS", "5"), 64); err != nil {
		return cfg, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(articlepage.EnvOr("RATE_LIMIT_BURST", "20")); err != nil {
		return cfg, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	return cfg, nil
}
