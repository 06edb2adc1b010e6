package pubview

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// assetsPrefix is the URL prefix under which imported pipeline assets are served.
const assetsPrefix = "/static/"

type imageSize struct {
	width, height int
}

// ImageSizer looks up the intrinsic size of local thumbnails by decoding
// only the image header. Results, including failures, are cached; remote
// images and unreadable files report 0x0 so the views fall back to their
// default size.
type ImageSizer struct {
	root string // directory that holds the static/ tree

	mu    sync.RWMutex
	sizes map[string]imageSize
}

// NewImageSizer creates a sizer resolving /static/... URLs under root.
func NewImageSizer(root string) *ImageSizer {
	return &ImageSizer{root: root, sizes: make(map[string]imageSize)}
}

// Size returns the width and height of the image at src.
func (p *ImageSizer) Size(src string) (int, int) {
	p.mu.RLock()
	s, ok := p.sizes[src]
	p.mu.RUnlock()
	if ok {
		return s.width, s.height
	}

	s = p.measure(src)
	p.mu.Lock()
	p.sizes[src] = s
	p.mu.Unlock()
	return s.width, s.height
}

// Reset forgets cached sizes, e.g. after an import replaced the assets.
func (p *ImageSizer) Reset() {
	p.mu.Lock()
	p.sizes = make(map[string]imageSize)
	p.mu.Unlock()
}

func (p *ImageSizer) measure(src string) imageSize {
	file, ok := p.localPath(src)
	if !ok {
		return imageSize{}
	}
	f, err := os.Open(file)
	if err != nil {
		return imageSize{}
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return imageSize{}
	}
	return imageSize{width: cfg.Width, height: cfg.Height}
}

// localPath maps /static/... to a file under root, refusing anything that
// would escape it.
func (p *ImageSizer) localPath(src string) (string, bool) {
	if !strings.HasPrefix(src, assetsPrefix) {
		return "", false
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	clean := path.Clean(src)
	if !strings.HasPrefix(clean, assetsPrefix) {
		return "", false
	}
	return filepath.Join(p.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), true
}
