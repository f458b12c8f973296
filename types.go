package articlepage

import (
	"net/http"
	"strings"

	"github.com/eringen/articlepage/article"
)

// location is the canonical address of r. The origin comes from the site
// URL rather than the Host header.
func (a *App) location(r *http.Request) article.Location {
	return article.Location{
		Origin:   strings.TrimSuffix(a.Config.URL, "/"),
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}
