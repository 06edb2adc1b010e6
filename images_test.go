package pubview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	require.NoError(t, png.Encode(f, img))
}

func TestImageSizerSize(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "static", "img", "a.png"), 64, 32)
	p := NewImageSizer(root)

	tests := []struct {
		src          string
		wantW, wantH int
	}{
		{"/static/img/a.png", 64, 32},
		{"/static/img/a.png?v=2", 64, 32},
		{"/static/img/missing.png", 0, 0},
		{"https://cdn.example.com/a.png", 0, 0},
		{"/static/../static/img/a.png", 64, 32},
		{"/static/../../etc/passwd", 0, 0},
		{"/public/a.png", 0, 0},
	}
	for _, tt := range tests {
		w, h := p.Size(tt.src)
		assert.Equal(t, tt.wantW, w, "Size(%q) width", tt.src)
		assert.Equal(t, tt.wantH, h, "Size(%q) height", tt.src)
	}
}

func TestImageSizerCachesUntilReset(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "static", "b.png")
	writePNG(t, file, 10, 20)
	p := NewImageSizer(root)

	w, h := p.Size("/static/b.png")
	assert.Equal(t, [2]int{10, 20}, [2]int{w, h})

	writePNG(t, file, 30, 40)
	w, h = p.Size("/static/b.png")
	assert.Equal(t, [2]int{10, 20}, [2]int{w, h}, "sizes are cached")

	p.Reset()
	w, h = p.Size("/static/b.png")
	assert.Equal(t, [2]int{30, 40}, [2]int{w, h})
}

func TestCardsUseMeasuredImageSize(t *testing.T) {
	static := t.TempDir()
	writePNG(t, filepath.Join(static, "static", "img", "post-1.png"), 640, 360)

	cfg := testConfig(t)
	cfg.ContentDir = writeExport(t, testPosts(2), nil)
	a := New(cfg, WithStaticDir(static))
	require.NoError(t, a.Setup(t.Context()))
	t.Cleanup(func() { a.Close() })

	body := get(a, "/").Body.String()
	assert.Contains(t, body, `src="/static/img/post-1.png" width="640" height="360"`)
	assert.Contains(t, body, `src="/static/img/post-2.png" width="200" height="100"`)
}
