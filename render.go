package articlepage

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/articlepage/article"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderState chooses the status code and component for st. The result
// depends only on st and loc: a loading view renders nothing, a loaded one
// renders the full article, and the rest render an error page.
func (a *App) RenderState(st article.State, loc article.Location) (int, templ.Component) {
	switch st.Status {
	case article.StatusLoaded:
		return http.StatusOK, a.articlePage(article.BuildPage(st.Entry, loc, a.Config.author(), a.formatDate))
	case article.StatusNotFound:
		return http.StatusNotFound, a.Views.NotFound()
	case article.StatusFailed:
		if errors.Is(st.Err, article.ErrTransport) {
			return http.StatusBadGateway, a.Views.ServerError()
		}
		return http.StatusInternalServerError, a.Views.ServerError()
	default:
		return http.StatusOK, templ.NopComponent
	}
}

func (a *App) articlePage(p article.Page) templ.Component {
	v := a.Views
	head := templ.Join(
		v.MetaTags(p.Meta),
		v.StructuredData(p.StructuredData),
	)
	body := templ.Join(
		v.Hero(p.Hero),
		v.RichText(p.Body),
		v.Divider(),
		v.Comments(p.Comments),
	)
	return v.Document(head, body)
}
