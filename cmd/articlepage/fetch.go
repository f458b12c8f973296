package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/mattn/godown"

	"github.com/eringen/articlepage"
	"github.com/eringen/articlepage/article"
	"github.com/eringen/articlepage/richtext"
)

type formatter func(w io.Writer, page article.Page) error

var formats = map[string]formatter{
	"html": formatHTML,
	"md":   formatMarkdown,
	"json": formatJSON,
}

func runFetch(w io.Writer, slug, format string) error {
	f, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown format %q (want html, md or json)", format)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := articlepage.NewContentfulSource(cfg)
	if err != nil {
		return err
	}
	page, err := fetchPage(context.Background(), src, cfg, slug)
	if err != nil {
		return err
	}
	return f(w, page)
}

func fetchPage(ctx context.Context, src article.Source, cfg articlepage.SiteConfig, slug string) (article.Page, error) {
	view := article.NewView(src)
	defer view.Close()

	view.Navigate(ctx, slug)
	st, err := view.Wait(ctx)
	if err != nil {
		return article.Page{}, err
	}
	switch st.Status {
	case article.StatusLoaded:
	case article.StatusNotFound:
		return article.Page{}, fmt.Errorf("%q: %w", slug, article.ErrNotFound)
	default:
		return article.Page{}, st.Err
	}

	author := article.Author{Name: cfg.Author, URL: cfg.AuthorURL}
	return article.BuildPage(st.Entry, pageLocation(cfg, slug), author, nil), nil
}

// pageLocation is where the server would serve slug.
func pageLocation(cfg articlepage.SiteConfig, slug string) article.Location {
	return article.Location{
		Origin: strings.TrimSuffix(cfg.URL, "/"),
		Path:   "/articles/" + url.PathEscape(slug) + "/",
	}
}

func formatHTML(w io.Writer, page article.Page) error {
	var buf bytes.Buffer
	richtext.RenderHTML(&buf, page.Body)
	_, err := buf.WriteTo(w)
	return err
}

func formatMarkdown(w io.Writer, page article.Page) error {
	var buf bytes.Buffer
	buf.WriteString("<h1>" + html.EscapeString(page.Hero.Title) + "</h1>")
	richtext.RenderHTML(&buf, page.Body)
	return godown.Convert(w, &buf, nil)
}

func formatJSON(w io.Writer, page article.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}
