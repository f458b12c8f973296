package articlepage

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/eringen/articlepage/article"
)

func (a *App) handleArticle(c echo.Context) error {
	slug := c.Param("slug")
	ctx := c.Request().Context()

	view := article.NewView(a.Source)
	defer view.Close()

	view.Navigate(ctx, slug)
	st, err := view.Wait(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusGatewayTimeout, "article did not load in time").SetInternal(err)
	}
	if st.Status == article.StatusFailed {
		c.Logger().Errorf("article %q: %v", slug, st.Err)
	}

	code, cmp := a.RenderState(st, a.location(c.Request()))
	if code != http.StatusOK {
		c.Response().Header().Set("Cache-Control", "no-store")
	}
	return RenderStatus(c, code, cmp)
}

func handleArticlesRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nDisallow: /metrics\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
