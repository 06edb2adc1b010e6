package pubview

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pubview/slug"
	"github.com/eringen/pubview/views"
)

// env assembles the per-request rendering environment.
func (a *App) env(c echo.Context) views.Env {
	return views.Env{
		Site: views.SiteConfig{
			Name:        a.Config.Name,
			URL:         a.Config.URL,
			Description: a.Config.Description,
			Author:      a.Config.Author,
			Locale:      a.Config.Locale,
		},
		Theme:       Theme(c),
		CSRFToken:   CsrfToken(c),
		CurrentPath: c.Request().URL.Path,
		ImageSize:   a.images.Size,
	}
}

func isPartial(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// page renders body inside the layout, or alone for htmx partial requests.
func (a *App) page(c echo.Context, view string, meta views.PageMeta, body templ.Component) error {
	if isPartial(c) {
		return a.renderView(c, http.StatusOK, view, body)
	}
	return a.renderView(c, http.StatusOK, view, views.Page(a.env(c), meta, body))
}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx, "")
	if err != nil {
		return err
	}
	meta := views.PageMeta{Title: a.Config.Name, URL: views.BuildURL(a.Config.URL)}
	return a.page(c, "home", meta, a.Views.Home(a.env(c), posts))
}

func (a *App) handleBlog(c echo.Context) error {
	return a.blogPage(c, 1)
}

func (a *App) handleBlogPage(c echo.Context) error {
	n, err := pageParam(c)
	if err != nil {
		return err
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/blog/")
	}
	return a.blogPage(c, n)
}

func (a *App) blogPage(c echo.Context, n int) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx, "")
	if err != nil {
		return err
	}
	tags, err := a.Cache.TagCounts(ctx)
	if err != nil {
		return err
	}
	return a.renderList(c, "blog", "All Posts", posts, tags, n)
}

func (a *App) handleTag(c echo.Context) error {
	return a.tagPage(c, 1)
}

func (a *App) handleTagPage(c echo.Context) error {
	n, err := pageParam(c)
	if err != nil {
		return err
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, views.PageHref("tags/"+c.Param("tag"), 1))
	}
	return a.tagPage(c, n)
}

func (a *App) tagPage(c echo.Context, n int) error {
	ctx := c.Request().Context()
	tag := c.Param("tag")
	if tag == "" || slug.Make(tag) != tag {
		return echo.ErrNotFound
	}
	posts, err := a.Cache.ListPosts(ctx, tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	tags, err := a.Cache.TagCounts(ctx)
	if err != nil {
		return err
	}
	return a.renderList(c, "tag", views.TagName(tags, tag), posts, tags, n)
}

// renderList shows page n of posts. Pages outside the listing are 404s.
func (a *App) renderList(c echo.Context, view, title string, posts []Post, tags map[string]int, n int) error {
	perPage := a.Config.PostsPerPage
	total := views.TotalPages(len(posts), perPage)
	if n < 1 || n > total {
		return echo.ErrNotFound
	}
	path := c.Request().URL.Path
	props := views.ListProps{
		Posts:               posts,
		InitialDisplayPosts: views.PageSlice(posts, n, perPage),
		Title:               title,
		Pagination:          &views.Pagination{CurrentPage: n, TotalPages: total},
		CurrentPath:         path,
		Tags:                tags,
	}
	meta := views.PageMeta{
		Title: title,
		URL:   a.Config.URL + views.PageHref(views.ListBase(path), n),
	}
	return a.page(c, view, meta, a.Views.TaggedList(a.env(c), props))
}

func pageParam(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil || n < 1 {
		return 0, echo.ErrNotFound
	}
	return n, nil
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Cache.TagCounts(c.Request().Context())
	if err != nil {
		return err
	}
	meta := views.PageMeta{Title: "Tags", URL: views.BuildURL(a.Config.URL, "tags")}
	return a.page(c, "tags", meta, a.Views.TagIndex(a.env(c), tags))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	meta := views.PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         views.BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
	}
	return a.page(c, "post", meta, a.Views.Post(a.env(c), post))
}

// handleTheme flips the visitor's theme and sends them back where they were.
func (a *App) handleTheme(c echo.Context) error {
	next := "dark"
	if Theme(c) == "dark" {
		next = "light"
	}
	if err := setTheme(c, next); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, localRedirect(c.FormValue("redirect")))
}

// localRedirect only allows same-site absolute paths.
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx, "")
	if err != nil {
		return err
	}
	tags, err := a.Cache.TagCounts(ctx)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, tags)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleAtom(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderAtom(c, posts)
}

// handleRobots generates robots.txt from the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		return c.String(http.StatusServiceUnavailable, "store unavailable")
	}
	return c.String(http.StatusOK, "ok")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderView(c, http.StatusNotFound, "not_found", a.Views.NotFound(a.env(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		slog.Error("server error", "path", c.Request().URL.Path, "error", err)
		_ = a.renderView(c, code, "server_error", a.Views.ServerError(a.env(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
