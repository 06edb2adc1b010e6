package pubview

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	atom "github.com/thomas11/atomgenerator"

	"github.com/eringen/pubview/views"
)

// atomFeed builds the Atom document for posts. Posts whose date cannot be
// parsed are left out because Atom entries require an updated time.
func (a *App) atomFeed(posts []Post) ([]byte, error) {
	feed := atom.Feed{
		Title:   a.Config.Name,
		Link:    views.BuildURL(a.Config.URL),
		PubDate: time.Now().UTC(),
	}
	author := a.Config.Author
	if author == "" {
		author = a.Config.Name
	}
	feed.AddAuthor(atom.Author{Name: author, Uri: views.BuildURL(a.Config.URL)})

	for i, p := range posts {
		t, ok := views.ParseDate(p.Date)
		if !ok {
			continue
		}
		if i == 0 {
			feed.PubDate = t
		}
		e := &atom.Entry{
			Title:       p.Title,
			Description: p.Summary,
			Link:        views.BuildURL(a.Config.URL, p.Path),
			PubDate:     t,
			Content:     p.Body,
		}
		for _, tag := range p.Tags {
			e.AddCategory(atom.Category{Term: tag})
		}
		feed.AddEntry(e)
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, err := range errs {
			slog.Warn("invalid atom feed", "error", err)
		}
		return nil, errs[0]
	}
	return feed.GenXml()
}

func (a *App) renderAtom(c echo.Context, posts []Post) error {
	body, err := a.atomFeed(posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", body)
}
