package pubview

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardMarker = `class="post-card `

func TestHomePage(t *testing.T) {
	tests := []struct {
		name      string
		posts     int
		wantCards int
		wantMore  bool
	}{
		{"empty", 0, 0, false},
		{"few", 3, 3, false},
		{"exactly five", 5, 5, false},
		{"more than five", 7, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, testPosts(tt.posts), nil)
			rec := get(a, "/")
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()

			assert.Equal(t, tt.wantCards, strings.Count(body, cardMarker))
			assert.Equal(t, tt.wantMore, strings.Contains(body, `aria-label="All posts"`))
			assert.Equal(t, tt.posts == 0, strings.Contains(body, "No posts found."))
			assert.Contains(t, body, "<title>Test Blog</title>")
		})
	}
}

func TestHomeShowsNewestFirst(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)
	body := get(a, "/").Body.String()
	first := strings.Index(body, "Post 1<")
	fifth := strings.Index(body, "Post 5<")
	require.True(t, first > 0 && fifth > 0)
	assert.Less(t, first, fifth)
	assert.NotContains(t, body, "Post 6<")
}

func TestBlogPagination(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)

	rec := get(a, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 5, strings.Count(body, cardMarker))
	assert.Contains(t, body, "<span>1 of 2</span>")
	assert.Contains(t, body, `<button class="cursor-auto disabled:opacity-50" disabled>Previous</button>`)
	assert.Contains(t, body, `<a href="/blog/page/2" rel="next">Next</a>`)
	assert.Contains(t, body, `<h3 class="font-bold uppercase text-primary-500">All Posts</h3>`)

	rec = get(a, "/blog/page/2")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, cardMarker))
	assert.Contains(t, body, "<span>2 of 2</span>")
	assert.Contains(t, body, `<a href="/blog/" rel="prev">Previous</a>`)
	assert.Contains(t, body, `<button class="cursor-auto disabled:opacity-50" disabled>Next</button>`)
	assert.Contains(t, body, "Post 6<")
}

func TestBlogSinglePageHasNoPagination(t *testing.T) {
	a := newTestApp(t, testPosts(4), nil)
	body := get(a, "/blog/").Body.String()
	assert.Equal(t, 4, strings.Count(body, cardMarker))
	assert.NotContains(t, body, `class="pagination`)
}

func TestBlogPageRouting(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)

	tests := []struct {
		target   string
		code     int
		location string
	}{
		{"/blog", http.StatusMovedPermanently, "/blog/"},
		{"/blog/page/1", http.StatusMovedPermanently, "/blog/"},
		{"/blog/page/2", http.StatusOK, ""},
		{"/blog/page/3", http.StatusNotFound, ""},
		{"/blog/page/99", http.StatusNotFound, ""},
		{"/blog/page/0", http.StatusNotFound, ""},
		{"/blog/page/two", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		assert.Equal(t, tt.code, rec.Code, "GET %s", tt.target)
		if tt.location != "" {
			assert.Equal(t, tt.location, rec.Header().Get("Location"), "GET %s", tt.target)
		}
	}
}

func TestTagPages(t *testing.T) {
	a := newTestApp(t, testPosts(12), map[string]int{"Go": 12, "Web": 6})

	rec := get(a, "/tags/go/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Go | Test Blog</title>")
	assert.Equal(t, 5, strings.Count(body, cardMarker))
	assert.Contains(t, body, "<span>1 of 3</span>")
	assert.Contains(t, body, `<a href="/tags/go/page/2" rel="next">Next</a>`)
	// The listed tag is emphasized text, the others stay links.
	assert.Contains(t, body, ">Go (12)</h3>")
	assert.Contains(t, body, `class="sidebar-tag `)
	assert.Contains(t, body, `aria-label="View posts tagged Web"`)
	assert.NotContains(t, body, `aria-label="View posts tagged Go"`)
	// Off the /blog section the sidebar links back to all posts.
	assert.NotContains(t, body, `<h3 class="font-bold uppercase text-primary-500">All Posts</h3>`)

	rec = get(a, "/tags/web/")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Equal(t, 5, strings.Count(body, cardMarker))
	assert.Contains(t, body, "<span>1 of 2</span>")

	rec = get(a, "/tags/web/page/2")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, cardMarker))
	assert.Contains(t, body, `<a href="/tags/web/" rel="prev">Previous</a>`)
}

func TestPunctuatedTagLinksResolve(t *testing.T) {
	posts := testPosts(3)
	posts[0].Tags = []string{"Node.js"}
	posts[2].Tags = []string{"Node.js", "Go"}
	a := newTestApp(t, posts, map[string]int{"nodejs": 2, "go": 2})

	body := get(a, "/blog/").Body.String()
	assert.Contains(t, body, `<a href="/tags/nodejs" class="sidebar-tag `)
	assert.Contains(t, body, `<a href="/tags/nodejs" class="tag-badge `)
	assert.NotContains(t, body, "/tags/node-js")

	rec := get(a, "/tags/nodejs/")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, cardMarker))
	assert.Contains(t, body, ">nodejs (2)</h3>")
}

func TestTagPageRouting(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)

	tests := []struct {
		target   string
		code     int
		location string
	}{
		{"/tags/go", http.StatusMovedPermanently, "/tags/go/"},
		{"/tags/go/page/1", http.StatusMovedPermanently, "/tags/go/"},
		{"/tags/go/page/2", http.StatusOK, ""},
		{"/tags/go/page/3", http.StatusNotFound, ""},
		{"/tags/rust/", http.StatusNotFound, ""},
		{"/tags/Go/", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		assert.Equal(t, tt.code, rec.Code, "GET %s", tt.target)
		if tt.location != "" {
			assert.Equal(t, tt.location, rec.Header().Get("Location"), "GET %s", tt.target)
		}
	}
}

func TestTagIndexPage(t *testing.T) {
	a := newTestApp(t, testPosts(4), nil)
	rec := get(a, "/tags/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	goAt := strings.Index(body, `aria-label="View posts tagged go"> (4)</a>`)
	webAt := strings.Index(body, `aria-label="View posts tagged web"> (2)</a>`)
	require.True(t, goAt > 0 && webAt > 0)
	assert.Less(t, goAt, webAt)
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, testPosts(3), nil)

	rec := get(a, "/blog/post-2/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Post 2 | Test Blog</title>")
	assert.Contains(t, body, "<p>Body of post 2</p>")
	assert.Contains(t, body, `"@type":"BlogPosting"`)

	rec = get(a, "/blog/post-2")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/post-2/", rec.Header().Get("Location"))

	rec = get(a, "/blog/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry we couldn")
}

func TestDraftsAreHidden(t *testing.T) {
	posts := testPosts(2)
	posts[0].Draft = true
	a := newTestApp(t, posts, nil)

	body := get(a, "/").Body.String()
	assert.Equal(t, 1, strings.Count(body, cardMarker))
	assert.Equal(t, http.StatusNotFound, get(a, "/blog/post-1/").Code)
}

func TestPostWithoutImageIsServerError(t *testing.T) {
	posts := testPosts(2)
	posts[1].Images = nil
	a := newTestApp(t, posts, nil)

	rec := get(a, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong on our side.")
}

func TestPartialRendering(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)

	rec := doRequest(a, http.MethodGet, "/blog/page/2", http.Header{"Hx-Request": {"true"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<html")
	assert.True(t, strings.HasPrefix(body, `<div id="post-list">`))
	assert.Contains(t, body, "<span>2 of 2</span>")
}

func TestThemeToggle(t *testing.T) {
	a := newTestApp(t, testPosts(1), nil)

	rec := get(a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `<html lang="en-US" class="dark">`)

	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	require.NotNil(t, csrf, "a page view sets the CSRF cookie")

	// Without a token the toggle is refused.
	rec = doRequest(a, http.MethodPost, "/theme/", http.Header{"Cookie": {csrf.Name + "=" + csrf.Value}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	form := url.Values{"_csrf": {csrf.Value}, "redirect": {"/blog/"}}
	rec = doRequest(a, http.MethodPost, "/theme/?"+form.Encode(), http.Header{"Cookie": {csrf.Name + "=" + csrf.Value}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog/", rec.Header().Get("Location"))

	var sess *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName {
			sess = c
		}
	}
	require.NotNil(t, sess)

	rec = doRequest(a, http.MethodGet, "/", http.Header{"Cookie": {sess.Name + "=" + sess.Value}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en-US" class="dark">`)
}

func TestLocalRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/blog/", "/blog/"},
		{"/tags/go/page/2", "/tags/go/page/2"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
	}
	for _, tt := range tests {
		if got := localRedirect(tt.in); got != tt.want {
			t.Errorf("localRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRobotsAndHealth(t *testing.T) {
	a := newTestApp(t, testPosts(1), nil)

	rec := get(a, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")

	rec = get(a, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t, testPosts(1), nil)
	rec := get(a, "/public/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".line-clamp-2")
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t, testPosts(7), nil)
	require.Equal(t, http.StatusOK, get(a, "/").Code)
	require.Equal(t, http.StatusOK, get(a, "/blog/").Code)

	rec := get(a, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `pubview_page_renders_total{view="home"} 1`)
	assert.Contains(t, body, `pubview_page_renders_total{view="blog"} 1`)
	assert.Contains(t, body, `pubview_content_imports_total{status="ok"} 1`)
	assert.Contains(t, body, "pubview_posts_loaded 7")
}
