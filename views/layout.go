package views

import (
	"bytes"
	"context"
	"time"

	"github.com/a-h/templ"
)

// Page wraps body in the site layout: <head> with SEO metadata, the header
// navigation with the theme toggle, and the footer.
func Page(env Env, meta PageMeta, body templ.Component) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		writeHead(buf, env, meta)
		if err := body.Render(ctx, buf); err != nil {
			return err
		}
		writeFoot(buf, env.Site)
		return nil
	})
}

func writeHead(buf *bytes.Buffer, env Env, meta PageMeta) {
	title := env.Site.Name
	if meta.Title != "" && meta.Title != env.Site.Name {
		title = meta.Title + " | " + env.Site.Name
	}
	description := meta.Description
	if description == "" {
		description = env.Site.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}

	buf.WriteString(`<!DOCTYPE html><html lang="`)
	buf.WriteString(esc(lang(env.Site.Locale)))
	buf.WriteString(`"`)
	if env.Theme == "dark" {
		buf.WriteString(` class="dark"`)
	}
	buf.WriteString(`><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>`)
	buf.WriteString(esc(title))
	buf.WriteString(`</title><meta name="description" content="`)
	buf.WriteString(esc(description))
	buf.WriteString(`"/><meta property="og:title" content="`)
	buf.WriteString(esc(title))
	buf.WriteString(`"/><meta property="og:type" content="`)
	buf.WriteString(esc(ogType))
	buf.WriteString(`"/>`)
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="`)
		buf.WriteString(href(meta.URL))
		buf.WriteString(`"/><meta property="og:url" content="`)
		buf.WriteString(href(meta.URL))
		buf.WriteString(`"/>`)
	}
	buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="RSS" href="/feed.xml"/>`)
	buf.WriteString(`<link rel="alternate" type="application/atom+xml" title="Atom" href="/atom.xml"/>`)
	buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
	buf.WriteString(`<script type="application/ld+json">`)
	buf.WriteString(WebsiteJsonLD(env.Site))
	buf.WriteString(`</script></head><body class="bg-white text-black antialiased dark:bg-gray-950 dark:text-white">`)

	buf.WriteString(`<header class="flex items-center justify-between py-10"><a href="/" class="text-2xl font-semibold">`)
	buf.WriteString(esc(env.Site.Name))
	buf.WriteString(`</a><nav class="flex items-center space-x-4">`)
	writeLink(buf, "/blog/", "font-medium", "", "Blog")
	writeLink(buf, "/tags/", "font-medium", "", "Tags")
	writeThemeToggle(buf, env)
	buf.WriteString(`</nav></header><main class="mb-auto">`)
}

func writeThemeToggle(buf *bytes.Buffer, env Env) {
	redirect := env.CurrentPath
	if redirect == "" {
		redirect = "/"
	}
	next := "dark"
	if env.Theme == "dark" {
		next = "light"
	}
	buf.WriteString(`<form method="post" action="/theme/" class="theme-toggle">`)
	buf.WriteString(`<input type="hidden" name="_csrf" value="`)
	buf.WriteString(esc(env.CSRFToken))
	buf.WriteString(`"/><input type="hidden" name="redirect" value="`)
	buf.WriteString(esc(redirect))
	buf.WriteString(`"/><button type="submit" aria-label="Switch to `)
	buf.WriteString(next)
	buf.WriteString(` theme">`)
	if next == "dark" {
		buf.WriteString("☾")
	} else {
		buf.WriteString("☀")
	}
	buf.WriteString(`</button></form>`)
}

func writeFoot(buf *bytes.Buffer, site SiteConfig) {
	buf.WriteString(`</main><footer class="mt-16 flex flex-col items-center text-sm text-gray-500 dark:text-gray-400"><div class="mb-2 flex space-x-2">`)
	if site.Author != "" {
		buf.WriteString(`<span>`)
		buf.WriteString(esc(site.Author))
		buf.WriteString(`</span><span>•</span>`)
	}
	buf.WriteString(`<span>© `)
	buf.WriteString(time.Now().Format("2006"))
	buf.WriteString(`</span><span>•</span>`)
	writeLink(buf, "/", "", "", site.Name)
	buf.WriteString(`<span>•</span>`)
	writeLink(buf, "/feed.xml", "", "", "RSS")
	buf.WriteString(`</div></footer></body></html>`)
}

func lang(locale string) string {
	if locale == "" {
		return "en"
	}
	return locale
}
