package views

import (
	"context"
	"io"
	"regexp"

	"github.com/a-h/templ"

	"github.com/eringen/articlepage/article"
	"github.com/eringen/articlepage/richtext"
)

var reShortname = regexp.MustCompile(`^[a-z0-9-]+$`)

// Document wraps head and body content in a full HTML page.
func Document(site Site, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+esc(site.lang())+`"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`); err != nil {
			return err
		}
		if err := head.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<link rel="stylesheet" href="/public/styles.css"/></head><body><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// MetaTags renders the title, description and OpenGraph/Twitter tags.
func MetaTags(site Site, m article.MetaTags) templ.Component {
	title := m.Title
	if site.Name != "" {
		title += " | " + site.Name
	}
	if m.Description == "" {
		m.Description = site.Description
	}
	image := absoluteURL(site.URL, m.Image)
	return html(
		`<title>`, esc(title), `</title>`,
		`<meta name="description" content="`, esc(m.Description), `"/>`,
		`<meta property="og:title" content="`, esc(m.Title), `"/>`,
		`<meta property="og:description" content="`, esc(m.Description), `"/>`,
		`<meta property="og:image" content="`, esc(image), `"/>`,
		`<meta property="og:type" content="`, esc(m.Type), `"/>`,
		`<meta property="og:site_name" content="`, esc(site.Name), `"/>`,
		`<meta name="twitter:card" content="summary_large_image"/>`,
		`<meta name="twitter:title" content="`, esc(m.Title), `"/>`,
		`<meta name="twitter:description" content="`, esc(m.Description), `"/>`,
		`<meta name="twitter:image" content="`, esc(image), `"/>`,
	)
}

// StructuredData renders the JSON-LD script for search engines.
func StructuredData(site Site, p article.StructuredData) templ.Component {
	return html(
		`<link rel="canonical" href="`, esc(p.URL), `"/>`,
		`<script type="application/ld+json">`, ArticleJsonLD(site, p), `</script>`,
	)
}

// Hero renders the article header: title, summary, date, byline and cover image.
func Hero(h article.Hero) templ.Component {
	byline := esc(h.AuthorName)
	if href := richtext.SafeURL(h.AuthorURL); href != "" {
		byline = `<a class="byline" target="_blank" rel="noopener noreferrer" href="` + href + `">` + byline + `</a>`
	}
	return html(
		`<section class="hero">`,
		`<h1>`, esc(h.Title), `</h1>`,
		`<p class="summary">`, esc(h.Description), `</p>`,
		`<p class="meta"><span>`, esc(h.Date), `</span><span class="sep">//</span><span>`, byline, `</span></p>`,
		`<div class="cover" role="img" aria-label="`, esc(h.Caption), `" style="background-image: url('`, cssURL(h.ImageURL), `')"></div>`,
		`<p class="caption">`, esc(h.Caption), `</p>`,
		`</section>`,
	)
}

// Divider separates the body from the comments.
func Divider() templ.Component {
	return html(`<hr class="divider"/>`)
}

// Comments embeds the Disqus thread for the article. Without a shortname it
// renders nothing.
func Comments(site Site, c article.Comments) templ.Component {
	if !reShortname.MatchString(site.DisqusShortname) {
		return templ.NopComponent
	}
	return html(
		`<div id="disqus_thread"></div><script>`,
		`var disqus_config = function () {`,
		`this.page.url = `, jsString(c.URL), `;`,
		`this.page.identifier = `, jsString(c.ID), `;`,
		`this.page.title = `, jsString(c.Title), `;`,
		`};`,
		`(function () { var d = document, s = d.createElement('script');`,
		`s.src = 'https://`, site.DisqusShortname, `.disqus.com/embed.js';`,
		`s.setAttribute('data-timestamp', +new Date()); (d.head || d.body).appendChild(s); })();`,
		`</script>`,
	)
}

// NotFound is the page shown when no article matches the slug.
func NotFound(site Site) templ.Component {
	return Document(site,
		html(`<title>Not found | `, esc(site.Name), `</title><meta name="robots" content="noindex"/>`),
		html(`<section class="error"><h1>Article not found</h1><p>The article you are looking for does not exist or was moved.</p><p><a href="`, esc(buildURL(site.URL)), `">Back to the homepage</a></p></section>`),
	)
}

// ServerError is the page shown when the article could not be loaded.
func ServerError(site Site) templ.Component {
	return Document(site,
		html(`<title>Something went wrong | `, esc(site.Name), `</title><meta name="robots" content="noindex"/>`),
		html(`<section class="error"><h1>Something went wrong</h1><p>The article could not be loaded. Please try again in a moment.</p></section>`),
	)
}
