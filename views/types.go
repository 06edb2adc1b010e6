package views

// SiteConfig holds the site-wide settings every page reads.
// Nothing in the templates is hardcoded beyond the intro copy.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Blog")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
	Locale      string // SITE_LOCALE (default "en-US")
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Post is a single blog entry as handed over by the content pipeline.
// Posts are read-only here.
type Post struct {
	Slug    string
	Path    string // e.g. "blog/my-post", linked as "/{Path}"
	Date    string // RFC 3339 or YYYY-MM-DD
	Title   string
	Summary string
	Tags    []string
	Images  []string // Images[0] is the card thumbnail
	Body    string   // pipeline-rendered HTML
	Draft   bool
}

// TagCount is one row of the tag-frequency table.
type TagCount struct {
	Tag   string
	Count int
}

// Pagination is the position inside a paged listing. Callers guarantee
// 1 <= CurrentPage <= TotalPages.
type Pagination struct {
	CurrentPage int
	TotalPages  int
}

// Env carries what every component needs besides its own data: site
// settings, the visitor's theme, the CSRF token for the theme form and the
// image dimension lookup.
type Env struct {
	Site        SiteConfig
	Theme       string // "light" or "dark"
	CSRFToken   string
	CurrentPath string
	ImageSize   func(src string) (width, height int)
}

// ListProps is the input of TaggedList.
type ListProps struct {
	Posts               []Post
	InitialDisplayPosts []Post
	Title               string
	Pagination          *Pagination
	CurrentPath         string
	Tags                map[string]int
}
