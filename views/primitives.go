package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Default intrinsic thumbnail size, used when the image cannot be measured.
const (
	DefaultImageWidth  = 200
	DefaultImageHeight = 100
)

func esc(s string) string { return templ.EscapeString(s) }

// href sanitizes and escapes a URL for an attribute value.
func href(u string) string {
	return esc(string(templ.URL(u)))
}

// component adapts a buffer-writing function into a templ.Component. The
// output is assembled first so a failing render never leaves half a page.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Link renders an anchor. Extra attributes are written verbatim and must be
// escaped by the caller.
func Link(target, class, attrs, text string) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		writeLink(buf, target, class, attrs, text)
		return nil
	})
}

func writeLink(buf *bytes.Buffer, target, class, attrs, text string) {
	buf.WriteString(`<a href="`)
	buf.WriteString(href(target))
	buf.WriteString(`"`)
	if class != "" {
		buf.WriteString(` class="`)
		buf.WriteString(esc(class))
		buf.WriteString(`"`)
	}
	if attrs != "" {
		buf.WriteString(" ")
		buf.WriteString(attrs)
	}
	buf.WriteString(">")
	buf.WriteString(esc(text))
	buf.WriteString("</a>")
}

// Image renders an <img> with intrinsic dimensions. Priority images are
// fetched eagerly with high priority, the rest lazily.
func Image(src string, width, height int, priority bool, alt, class string) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		writeImage(buf, src, width, height, priority, alt, class)
		return nil
	})
}

func writeImage(buf *bytes.Buffer, src string, width, height int, priority bool, alt, class string) {
	buf.WriteString(`<img src="`)
	buf.WriteString(href(src))
	buf.WriteString(`" width="`)
	buf.WriteString(strconv.Itoa(width))
	buf.WriteString(`" height="`)
	buf.WriteString(strconv.Itoa(height))
	buf.WriteString(`" alt="`)
	buf.WriteString(esc(alt))
	buf.WriteString(`"`)
	if class != "" {
		buf.WriteString(` class="`)
		buf.WriteString(esc(class))
		buf.WriteString(`"`)
	}
	if priority {
		buf.WriteString(` fetchpriority="high"`)
	} else {
		buf.WriteString(` loading="lazy"`)
	}
	buf.WriteString(` decoding="async"/>`)
}

func (e Env) imageSize(src string) (int, int) {
	if e.ImageSize == nil {
		return DefaultImageWidth, DefaultImageHeight
	}
	w, h := e.ImageSize(src)
	if w <= 0 || h <= 0 {
		return DefaultImageWidth, DefaultImageHeight
	}
	return w, h
}

// writeTag renders a tag badge linking to the tag's listing.
func writeTag(buf *bytes.Buffer, tag string) {
	writeLink(buf, TagHref(tag), "tag-badge mr-3 text-sm font-medium uppercase text-primary-500 hover:text-primary-600 dark:hover:text-primary-400", "", tag)
}

func writeTime(buf *bytes.Buffer, date, locale string) {
	buf.WriteString(`<time datetime="`)
	buf.WriteString(esc(date))
	buf.WriteString(`" class="text-sm font-medium text-gray-500 dark:text-gray-400">`)
	buf.WriteString(esc(FormatDate(date, locale)))
	buf.WriteString(`</time>`)
}
