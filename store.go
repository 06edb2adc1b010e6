package pubview

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/eringen/pubview/views"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps the SQLite database holding the imported content: the posts
// and the tag-frequency table. Everything except ReplaceAll is read-only.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the watcher's import run while requests read; writers wait
	// on busy_timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// schemaVersion is bumped whenever the tables change. The store only holds
// an imported snapshot, so an outdated schema is dropped and rebuilt; the
// next import refills it.
const schemaVersion = 2

func (s *Store) ensureSchema() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	if version != schemaVersion {
		if _, err := s.db.Exec(`DROP TABLE IF EXISTS posts; DROP TABLE IF EXISTS tag_counts;`); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    date TEXT NOT NULL,
    published INTEGER NOT NULL,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    tags TEXT NOT NULL,
    images TEXT NOT NULL,
    body TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published DESC, slug);
CREATE TABLE IF NOT EXISTS tag_counts (
    tag TEXT PRIMARY KEY,
    count INTEGER NOT NULL
);
PRAGMA user_version = ` + strconv.Itoa(schemaVersion) + `;
`)
	return err
}

// ReplaceAll swaps the stored corpus for posts and tags in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, posts []Post, tags map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tag_counts`); err != nil {
		return err
	}

	postStmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (slug, path, date, published, title, summary, tags, images, body, draft) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer postStmt.Close()
	for _, p := range posts {
		tagsJSON, err := encodeList(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags of %q: %w", p.Slug, err)
		}
		images, err := encodeList(p.Images)
		if err != nil {
			return fmt.Errorf("encode images of %q: %w", p.Slug, err)
		}
		draft := 0
		if p.Draft {
			draft = 1
		}
		if _, err := postStmt.ExecContext(ctx, p.Slug, p.Path, p.Date, publishedKey(p.Date), p.Title, p.Summary,
			tagsJSON, images, p.Body, draft); err != nil {
			return fmt.Errorf("insert %q: %w", p.Slug, err)
		}
	}

	tagStmt, err := tx.PrepareContext(ctx, `INSERT INTO tag_counts (tag, count) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer tagStmt.Close()
	for tag, n := range tags {
		if _, err := tagStmt.ExecContext(ctx, tag, n); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return tx.Commit()
}

// publishedKey is the sort key of a post date: Unix seconds of the parsed
// instant, so offsets compare correctly. Unparseable dates sort last.
func publishedKey(date string) int64 {
	t, _ := views.ParseDate(date)
	return t.Unix()
}

const postColumns = `slug, path, date, title, summary, tags, images, body, draft`

// ListPosts returns all published posts, newest first. Tag filtering happens
// on the cached list (see PostCache.ListPosts).
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts WHERE draft = 0 ORDER BY published DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ? AND draft = 0`, slug)
	return scanPost(row)
}

// TagCounts returns the tag-frequency table.
func (s *Store) TagCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag, count FROM tag_counts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tag string
		var n int
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, err
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}

// CountPosts returns the number of published posts.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE draft = 0`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(sc scanner) (Post, error) {
	var p Post
	var tags, images string
	var draft int
	if err := sc.Scan(&p.Slug, &p.Path, &p.Date, &p.Title, &p.Summary, &tags, &images, &p.Body, &draft); err != nil {
		return Post{}, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return Post{}, fmt.Errorf("decode tags of %q: %w", p.Slug, err)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return Post{}, fmt.Errorf("decode images of %q: %w", p.Slug, err)
	}
	p.Draft = draft == 1
	return p, nil
}

func encodeList(vals []string) (string, error) {
	b, err := json.Marshal(vals)
	return string(b), err
}
