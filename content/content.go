// Package content reads the JSON export written by the external content
// pipeline: posts.json (post records) and tag-data.json (tag frequencies).
package content

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	cp "github.com/otiai10/copy"

	"github.com/eringen/pubview/slug"
	"github.com/eringen/pubview/views"
)

const (
	PostsFile = "posts.json"
	TagsFile  = "tag-data.json"
	AssetsDir = "static"

	// ReservedSlug is taken by the /blog/page/{n} routes.
	ReservedSlug = "page"
)

var (
	// ErrInvalidPost is returned for a record missing its slug or title.
	ErrInvalidPost = errors.New("content: invalid post")
	// ErrDuplicateSlug is returned when two records share a slug.
	ErrDuplicateSlug = errors.New("content: duplicate slug")
)

// Export is one consistent snapshot of the pipeline's output.
type Export struct {
	Posts []views.Post
	Tags  map[string]int
}

type record struct {
	Slug    string   `json:"slug"`
	Path    string   `json:"path"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Images  []string `json:"images"`
	Body    string   `json:"body"`
	Draft   bool     `json:"draft"`
}

// Load reads an export directory. tag-data.json is optional; without it the
// table is counted from the posts.
func Load(dir string) (Export, error) {
	pf, err := os.Open(filepath.Join(dir, PostsFile))
	if err != nil {
		return Export{}, fmt.Errorf("open posts: %w", err)
	}
	defer pf.Close()

	var tags io.Reader
	tf, err := os.Open(filepath.Join(dir, TagsFile))
	switch {
	case err == nil:
		defer tf.Close()
		tags = tf
	case !errors.Is(err, os.ErrNotExist):
		return Export{}, fmt.Errorf("open tags: %w", err)
	}
	return Decode(pf, tags)
}

// Decode parses the posts array and, when tags is non-nil, the tag table.
// Posts come back newest first.
func Decode(posts, tags io.Reader) (Export, error) {
	var records []record
	if err := json.NewDecoder(posts).Decode(&records); err != nil {
		return Export{}, fmt.Errorf("decode posts: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]views.Post, 0, len(records))
	for i, r := range records {
		r.Slug = strings.TrimSpace(r.Slug)
		if r.Slug == "" || strings.TrimSpace(r.Title) == "" {
			return Export{}, fmt.Errorf("record %d: %w: slug and title are required", i, ErrInvalidPost)
		}
		if r.Slug == ReservedSlug {
			return Export{}, fmt.Errorf("record %d: %w: slug %q is reserved", i, ErrInvalidPost, r.Slug)
		}
		if _, dup := seen[r.Slug]; dup {
			return Export{}, fmt.Errorf("%w: %q", ErrDuplicateSlug, r.Slug)
		}
		seen[r.Slug] = struct{}{}
		out = append(out, r.post())
	}
	SortByDate(out)

	exp := Export{Posts: out}
	if tags != nil {
		if err := json.NewDecoder(tags).Decode(&exp.Tags); err != nil {
			return Export{}, fmt.Errorf("decode tags: %w", err)
		}
	} else {
		exp.Tags = CountTags(out)
	}
	return exp, nil
}

func (r record) post() views.Post {
	path := strings.Trim(r.Path, "/")
	if path == "" {
		path = "blog/" + r.Slug
	}
	return views.Post{
		Slug:    r.Slug,
		Path:    path,
		Date:    r.Date,
		Title:   r.Title,
		Summary: r.Summary,
		Tags:    r.Tags,
		Images:  r.Images,
		Body:    r.Body,
		Draft:   r.Draft,
	}
}

// SortByDate orders posts newest first; equal dates sort by slug.
func SortByDate(posts []views.Post) {
	slices.SortStableFunc(posts, func(a, b views.Post) int {
		ta, _ := views.ParseDate(a.Date)
		tb, _ := views.ParseDate(b.Date)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

// CountTags builds the tag table the way the pipeline does: keys are tag
// slugs, each published post counts once per distinct tag.
func CountTags(posts []views.Post) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.Draft {
			continue
		}
		seen := make(map[string]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			s := slug.Make(t)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			counts[s]++
		}
	}
	return counts
}

// CopyAssets copies the export's static/ tree into dst/static. A missing
// source tree is not an error.
func CopyAssets(dir, dst string) error {
	src := filepath.Join(dir, AssetsDir)
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := cp.Copy(src, filepath.Join(dst, AssetsDir)); err != nil {
		return fmt.Errorf("copy assets: %w", err)
	}
	return nil
}
