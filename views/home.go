package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// card describes how one post card is drawn; home and list cards differ
// only in link target, tag limit and image styling.
type card struct {
	href       string
	tagLimit   int
	imageClass string
	boxClass   string
	gapClass   string
}

var (
	homeCard = card{
		tagLimit:   -1,
		imageClass: "mb-4 h-40 w-full rounded-t-lg object-cover",
		boxClass:   "post-card relative rounded-lg bg-white p-4 shadow-lg dark:bg-[#22272B]",
		gapClass:   "flex w-full flex-wrap gap-2",
	}
	listCard = card{
		tagLimit:   MaxListTags,
		imageClass: "mb-4 h-48 w-full rounded-t-lg object-cover",
		boxClass:   "post-card relative rounded-lg bg-white p-4 shadow-lg dark:bg-[#22272B] md:aspect-[0.6]",
		gapClass:   "flex w-full flex-wrap gap-1",
	}
)

func writeCard(buf *bytes.Buffer, env Env, p Post, c card, tag string) error {
	thumb, err := Thumbnail(p)
	if err != nil {
		return fmt.Errorf("render %q: %w", p.Slug, err)
	}
	w, h := env.imageSize(thumb)

	buf.WriteString("<" + tag + ` class="` + c.boxClass + `">`)
	writeImage(buf, thumb, w, h, true, "Image for "+p.Title, c.imageClass)
	buf.WriteString(`<div class="space-y-2"><div class="flex items-center justify-between">`)
	writeTime(buf, p.Date, env.Site.Locale)
	buf.WriteString(`</div><h2 class="text-lg font-semibold leading-6 tracking-tight">`)
	writeLink(buf, c.href, "text-gray-900 dark:text-gray-100", "", p.Title)
	buf.WriteString(`</h2><div class="` + c.gapClass + `">`)
	for _, t := range BadgeTags(p.Tags, c.tagLimit) {
		writeTag(buf, t)
	}
	buf.WriteString(`</div><p class="line-clamp-2 text-gray-500 dark:text-gray-400">`)
	buf.WriteString(esc(p.Summary))
	buf.WriteString(`</p><div class="text-base font-medium leading-6">`)
	writeLink(buf, c.href, "text-primary-500 hover:text-primary-600 dark:hover:text-primary-400",
		`aria-label="`+esc(`Read "`+p.Title+`"`)+`"`, "Read more →")
	buf.WriteString(`</div></div></` + tag + `>`)
	return nil
}

// Home renders the intro block and a preview of the most recent posts.
// posts must already be ordered newest first.
func Home(env Env, posts []Post) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		writeIntro(buf, env.Site)

		buf.WriteString(`<div class="flex flex-col items-center justify-center space-y-4 pt-20 text-center"><div class="space-y-2">`)
		buf.WriteString(`<h2 class="text-3xl font-bold tracking-tighter sm:text-5xl">Recent Posts</h2>`)
		buf.WriteString(`<p class="max-w-[900px] text-gray-600 dark:text-gray-400 md:text-xl/relaxed">Check out the latest posts.</p>`)
		buf.WriteString(`</div></div>`)

		buf.WriteString(`<div class="divide-y divide-gray-200 pt-20 dark:divide-gray-700">`)
		shown, more := RecentPosts(posts)
		if len(shown) == 0 {
			buf.WriteString(`<p class="no-posts">No posts found.</p>`)
		} else {
			buf.WriteString(`<div class="post-grid grid gap-8 md:grid-cols-2 lg:grid-cols-3">`)
			for _, p := range shown {
				c := homeCard
				c.href = PostHref(p)
				if err := writeCard(buf, env, p, c, "div"); err != nil {
					return err
				}
			}
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)

		if more {
			buf.WriteString(`<div class="flex w-full justify-center pt-10 text-center text-base font-medium leading-6">`)
			writeLink(buf, "/blog/", "text-primary-500 hover:text-primary-600 dark:hover:text-primary-400", `aria-label="All posts"`, "All Posts →")
			buf.WriteString(`</div>`)
		}
		return nil
	})
}

func writeIntro(buf *bytes.Buffer, site SiteConfig) {
	greeting := "Hi, welcome to " + site.Name
	if site.Author != "" {
		greeting = "Hi, I’m " + site.Author
	}
	buf.WriteString(`<div class="intro my-6 flex flex-col items-center gap-x-12 xl:mb-12 xl:flex-row"><div class="mr-8 pt-6">`)
	buf.WriteString(`<h1 class="pb-6 text-3xl font-extrabold leading-9 tracking-tight text-gray-900 dark:text-gray-100 sm:text-4xl md:text-6xl">`)
	buf.WriteString(esc(greeting))
	buf.WriteString(`</h1><h2 class="prose text-lg text-gray-600 dark:text-gray-400">`)
	if site.Description != "" {
		buf.WriteString(esc("Welcome to my blog - " + site.Description + ". "))
	}
	buf.WriteString(`I share my journey through `)
	writeLink(buf, "/blog/", "", "", "blogging")
	buf.WriteString(`. Enjoy the read!</h2></div></div>`)
}
