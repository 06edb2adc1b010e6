package pubview

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubview/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapURLs lists the home page, the blog index, every post and every
// tag page. Only the first page of each list is included.
func (a *App) sitemapURLs(posts []Post, tags map[string]int) []sitemapURL {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, "blog")},
		{Loc: views.BuildURL(base, "tags")},
	}
	for _, p := range posts {
		lastMod := ""
		if t, ok := views.ParseDate(p.Date); ok {
			lastMod = t.Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, p.Path),
			LastMod: lastMod,
		})
	}
	for _, tc := range views.SortTags(tags) {
		urls = append(urls, sitemapURL{Loc: base + views.TagHref(tc.Tag) + "/"})
	}
	return urls
}

func (a *App) renderSitemap(c echo.Context, posts []Post, tags map[string]int) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.sitemapURLs(posts, tags),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
