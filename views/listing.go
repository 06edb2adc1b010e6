package views

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/eringen/pubview/slug"
)

const (
	// MaxDisplay is the number of posts shown on the home page.
	MaxDisplay = 5
	// MaxListTags caps the tag badges on a list card.
	MaxListTags = 4
)

// ErrNoImage is returned when a post without images reaches a card.
var ErrNoImage = errors.New("views: post has no images")

// RecentPosts returns the first MaxDisplay posts and whether more exist.
func RecentPosts(posts []Post) ([]Post, bool) {
	if len(posts) <= MaxDisplay {
		return posts, false
	}
	return posts[:MaxDisplay], true
}

// SortTags orders the tag table by descending count. Equal counts fall back
// to ascending tag name so the sidebar is stable across renders.
func SortTags(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return out
}

// DisplayPosts picks initial when it is non-empty, posts otherwise.
func DisplayPosts(posts, initial []Post) []Post {
	if len(initial) > 0 {
		return initial
	}
	return posts
}

// BadgeTags returns at most limit tags. A negative limit keeps all of them.
func BadgeTags(tags []string, limit int) []string {
	if limit < 0 || len(tags) <= limit {
		return tags
	}
	return tags[:limit]
}

// Thumbnail returns the display image of p.
func Thumbnail(p Post) (string, error) {
	if len(p.Images) == 0 {
		return "", ErrNoImage
	}
	return p.Images[0], nil
}

// TotalPages returns how many pages of perPage items n items fill. An empty
// listing still has one page.
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	total := (n + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	return total
}

// PageSlice returns the posts on the given 1-indexed page.
func PageSlice(posts []Post, page, perPage int) []Post {
	if perPage <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(posts) {
		return nil
	}
	end := min(start+perPage, len(posts))
	return posts[start:end]
}

// ListBase returns the list root of currentPath: the path without a trailing
// "/page/{n}" and without surrounding slashes.
//
//	/blog/page/3     -> blog
//	/tags/go/        -> tags/go
//	/tags/go/page/2  -> tags/go
func ListBase(currentPath string) string {
	p := strings.Trim(currentPath, "/")
	if i := strings.LastIndex(p, "/page/"); i >= 0 {
		if _, err := strconv.Atoi(p[i+len("/page/"):]); err == nil {
			p = p[:i]
		}
	}
	return p
}

// PageHref links to page n of the list rooted at base. Page 1 is the bare
// list root; only later pages carry a /page/{n} suffix.
func PageHref(base string, n int) string {
	if n <= 1 {
		return "/" + base + "/"
	}
	return "/" + base + "/page/" + strconv.Itoa(n)
}

// Pager is the rendered state of the pagination control. An empty PrevHref
// or NextHref means that control is disabled.
type Pager struct {
	Current  int
	Total    int
	PrevHref string
	NextHref string
}

// HasPrev reports whether Previous is an active link.
func (p Pager) HasPrev() bool { return p.PrevHref != "" }

// HasNext reports whether Next is an active link.
func (p Pager) HasNext() bool { return p.NextHref != "" }

// NewPager computes the previous/next links for p inside the list rooted at base.
func NewPager(p Pagination, base string) Pager {
	pg := Pager{Current: p.CurrentPage, Total: p.TotalPages}
	if p.CurrentPage-1 > 0 {
		pg.PrevHref = PageHref(base, p.CurrentPage-1)
	}
	if p.CurrentPage+1 <= p.TotalPages {
		pg.NextHref = PageHref(base, p.CurrentPage+1)
	}
	return pg
}

// ShowPagination reports whether the control is rendered at all.
func ShowPagination(p *Pagination) bool {
	return p != nil && p.TotalPages > 1
}

// ActiveTag returns the tag slug selected by currentPath, the segment after
// "/tags/", or "" outside a tag page.
func ActiveTag(currentPath string) string {
	_, rest, ok := strings.Cut(currentPath, "/tags/")
	if !ok {
		return ""
	}
	seg, _, _ := strings.Cut(rest, "/")
	return seg
}

// IsActiveTag reports whether tag is the one the current page lists.
func IsActiveTag(currentPath, tag string) bool {
	active := ActiveTag(currentPath)
	return active != "" && active == slug.Make(tag)
}

// TagHref links to the listing of tag.
func TagHref(tag string) string {
	return "/tags/" + slug.Make(tag)
}

// FilterByTag keeps the posts carrying a tag whose slug is tagSlug.
func FilterByTag(posts []Post, tagSlug string) []Post {
	if tagSlug == "" {
		return posts
	}
	var out []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if slug.Make(t) == tagSlug {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// TagName finds the table key whose slug is tagSlug, falling back to the slug.
func TagName(counts map[string]int, tagSlug string) string {
	for tag := range counts {
		if slug.Make(tag) == tagSlug {
			return tag
		}
	}
	return tagSlug
}
