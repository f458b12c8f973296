package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/articlepage/article"
	"github.com/eringen/articlepage/richtext"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// ArticleJsonLD produces a Schema.org Article JSON-LD block from the structured data payload.
func ArticleJsonLD(site Site, p article.StructuredData) string {
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      p.Title,
		"description":   p.Description,
		"datePublished": p.DatePublished,
		"url":           p.URL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   p.URL,
		},
	}
	if p.Image != "" {
		data["image"] = absoluteURL(site.URL, p.Image)
	}
	if p.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  p.Author,
		}
	}
	if site.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// absoluteURL resolves ref against base; crawlers expect absolute image URLs.
func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() || base == "" {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

var cssURLEscaper = strings.NewReplacer(
	"'", "%27",
	`"`, "%22",
	"(", "%28",
	")", "%29",
	"\\", "%5C",
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
	"\f", "%0C",
)

// cssURL makes raw safe inside a quoted CSS url(). Characters that could end
// the string or the function are percent-encoded before the usual scheme check.
func cssURL(raw string) string {
	return richtext.SafeURL(cssURLEscaper.Replace(strings.TrimSpace(raw)))
}

// jsString encodes s as a JavaScript string literal safe to embed in <script>.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// html is a component writing pre-built markup.
func html(parts ...string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}
