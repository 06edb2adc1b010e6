package views

import "testing"

func TestRecentPosts(t *testing.T) {
	for _, n := range []int{0, 4, 5, 6, 12} {
		shown, more := RecentPosts(makePosts(n))
		if want := min(n, MaxDisplay); len(shown) != want {
			t.Errorf("RecentPosts(%d) shown = %d, want %d", n, len(shown), want)
		}
		if more != (n > MaxDisplay) {
			t.Errorf("RecentPosts(%d) more = %v", n, more)
		}
	}
}

func TestListBase(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/blog", "blog"},
		{"/blog/", "blog"},
		{"/blog/page/3", "blog"},
		{"/tags/go/", "tags/go"},
		{"/tags/go/page/2", "tags/go"},
		{"/tags/page/", "tags/page"},
	}
	for _, tt := range tests {
		if got := ListBase(tt.path); got != tt.expected {
			t.Errorf("ListBase(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestPageHref(t *testing.T) {
	tests := []struct {
		base     string
		n        int
		expected string
	}{
		{"blog", 1, "/blog/"},
		{"blog", 2, "/blog/page/2"},
		{"tags/go", 1, "/tags/go/"},
		{"tags/go", 7, "/tags/go/page/7"},
	}
	for _, tt := range tests {
		if got := PageHref(tt.base, tt.n); got != tt.expected {
			t.Errorf("PageHref(%q, %d) = %q, want %q", tt.base, tt.n, got, tt.expected)
		}
	}
}

func TestNewPager(t *testing.T) {
	pg := NewPager(Pagination{CurrentPage: 1, TotalPages: 3}, "blog")
	if pg.HasPrev() || pg.NextHref != "/blog/page/2" {
		t.Errorf("page 1 pager = %+v", pg)
	}
	pg = NewPager(Pagination{CurrentPage: 3, TotalPages: 3}, "blog")
	if pg.PrevHref != "/blog/page/2" || pg.HasNext() {
		t.Errorf("page 3 pager = %+v", pg)
	}
	pg = NewPager(Pagination{CurrentPage: 2, TotalPages: 3}, "blog")
	if pg.PrevHref != "/blog/" {
		t.Errorf("page 2 prev = %q, want the bare list root", pg.PrevHref)
	}
}

func TestActiveTag(t *testing.T) {
	tests := []struct {
		path     string
		tag      string
		active   bool
		expected string
	}{
		{"/tags/go", "go", true, "go"},
		{"/tags/go/", "Go", true, "go"},
		{"/tags/go/page/2", "go", true, "go"},
		{"/tags/aws-ec2/", "AWS EC2", true, "aws-ec2"},
		{"/tags/go/", "rust", false, "go"},
		{"/blog/", "go", false, ""},
		{"/", "go", false, ""},
	}
	for _, tt := range tests {
		if got := ActiveTag(tt.path); got != tt.expected {
			t.Errorf("ActiveTag(%q) = %q, want %q", tt.path, got, tt.expected)
		}
		if got := IsActiveTag(tt.path, tt.tag); got != tt.active {
			t.Errorf("IsActiveTag(%q, %q) = %v, want %v", tt.path, tt.tag, got, tt.active)
		}
	}
}

func TestTotalPagesAndSlice(t *testing.T) {
	posts := makePosts(11)
	if got := TotalPages(len(posts), 5); got != 3 {
		t.Errorf("TotalPages = %d, want 3", got)
	}
	if got := TotalPages(0, 5); got != 1 {
		t.Errorf("TotalPages(0) = %d, want 1", got)
	}
	if got := PageSlice(posts, 3, 5); len(got) != 1 || got[0].Slug != "post-11" {
		t.Errorf("PageSlice page 3 = %v", got)
	}
	if got := PageSlice(posts, 4, 5); got != nil {
		t.Errorf("PageSlice past the end = %v, want nil", got)
	}
}

func TestFilterByTagAndTagName(t *testing.T) {
	posts := append(makePosts(2, "AWS EC2"), makePosts(1, "go")...)
	if got := FilterByTag(posts, "aws-ec2"); len(got) != 2 {
		t.Errorf("FilterByTag = %d posts, want 2", len(got))
	}
	if got := TagName(map[string]int{"AWS EC2": 2, "go": 1}, "aws-ec2"); got != "AWS EC2" {
		t.Errorf("TagName = %q", got)
	}
	if got := TagName(nil, "missing"); got != "missing" {
		t.Errorf("TagName fallback = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date     string
		locale   string
		expected string
	}{
		{"2024-01-15", "en-US", "January 15, 2024"},
		{"2024-01-15", "en", "January 15, 2024"},
		{"2024-01-15T10:00:00Z", "en-US", "January 15, 2024"},
		{"2024-01-15", "en-GB", "15 January 2024"},
		{"2024-01-15", "de-DE", "15 January 2024"},
		{"soon", "en-US", "soon"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.date, tt.locale); got != tt.expected {
			t.Errorf("FormatDate(%q, %q) = %q, want %q", tt.date, tt.locale, got, tt.expected)
		}
	}
}
