package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// PostPage renders a single post. Body is HTML produced by the content
// pipeline and is written as-is.
func PostPage(env Env, p Post) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<article class="post"><header class="space-y-1 pt-6 text-center xl:pb-10">`)
		writeTime(buf, p.Date, env.Site.Locale)
		buf.WriteString(`<h1 class="text-3xl font-extrabold leading-9 tracking-tight sm:text-4xl md:text-5xl">`)
		buf.WriteString(esc(p.Title))
		buf.WriteString(`</h1><div class="flex flex-wrap justify-center gap-2">`)
		for _, t := range p.Tags {
			writeTag(buf, t)
		}
		buf.WriteString(`</div></header>`)
		if thumb, err := Thumbnail(p); err == nil {
			w, h := env.imageSize(thumb)
			writeImage(buf, thumb, w, h, true, "Image for "+p.Title, "mb-8 w-full rounded-lg object-cover")
		}
		buf.WriteString(`<div class="prose max-w-none pb-8 pt-10 dark:prose-invert">`)
		buf.WriteString(p.Body)
		buf.WriteString(`</div><div class="pt-4">`)
		writeLink(buf, "/blog/", "text-primary-500 hover:text-primary-600", `aria-label="Back to the blog"`, "← Back to the blog")
		buf.WriteString(`</div><script type="application/ld+json">`)
		buf.WriteString(BlogPostingJsonLD(env.Site, p))
		buf.WriteString(`</script></article>`)
		return nil
	})
}
