package views

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// TaggedList renders a post listing with the tag sidebar and, when the list
// spans several pages, the pagination control.
func TaggedList(env Env, props ListProps) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<div id="post-list"><div class="pb-6 pt-6"><h1 class="text-3xl font-extrabold leading-9 tracking-tight text-gray-900 dark:text-gray-100 sm:text-4xl md:text-6xl">`)
		buf.WriteString(esc(props.Title))
		buf.WriteString(`</h1></div><div class="flex md:space-x-5">`)

		writeSidebar(buf, props.CurrentPath, props.Tags)

		buf.WriteString(`<div><ul class="post-grid grid gap-4 md:grid-cols-2 lg:grid-cols-3">`)
		for _, p := range DisplayPosts(props.Posts, props.InitialDisplayPosts) {
			c := listCard
			c.href = PathHref(p)
			buf.WriteString(`<li class="py-4">`)
			if err := writeCard(buf, env, p, c, "article"); err != nil {
				return err
			}
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ul>`)

		if ShowPagination(props.Pagination) {
			writePagination(buf, NewPager(*props.Pagination, ListBase(props.CurrentPath)))
		}
		buf.WriteString(`</div></div></div>`)
		return nil
	})
}

func writeSidebar(buf *bytes.Buffer, currentPath string, counts map[string]int) {
	buf.WriteString(`<div class="tag-sidebar hidden h-full max-h-screen min-w-[220px] max-w-[220px] flex-wrap overflow-y-auto rounded bg-gray-50 pt-5 shadow-md dark:bg-gray-900/70 md:flex"><div class="px-2 py-1">`)
	if strings.HasPrefix(currentPath, "/blog") {
		buf.WriteString(`<h3 class="font-bold uppercase text-primary-500">All Posts</h3>`)
	} else {
		writeLink(buf, "/blog/", "font-bold uppercase text-gray-700 hover:text-primary-500 dark:text-gray-300", "", "All Posts")
	}
	buf.WriteString(`<ul>`)
	for _, tc := range SortTags(counts) {
		label := tc.Tag + " (" + strconv.Itoa(tc.Count) + ")"
		buf.WriteString(`<li class="my-3">`)
		if IsActiveTag(currentPath, tc.Tag) {
			buf.WriteString(`<h3 class="sidebar-tag active ` + TagClass(true) + `">`)
			buf.WriteString(esc(label))
			buf.WriteString(`</h3>`)
		} else {
			writeLink(buf, TagHref(tc.Tag), "sidebar-tag "+TagClass(false),
				`aria-label="`+esc("View posts tagged "+tc.Tag)+`"`, label)
		}
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ul></div></div>`)
}

func writePagination(buf *bytes.Buffer, pg Pager) {
	buf.WriteString(`<div class="pagination space-y-2 pb-8 pt-6 md:space-y-5"><nav class="flex justify-between">`)
	if pg.HasPrev() {
		writeLink(buf, pg.PrevHref, "", `rel="prev"`, "Previous")
	} else {
		buf.WriteString(`<button class="cursor-auto disabled:opacity-50" disabled>Previous</button>`)
	}
	buf.WriteString(`<span>`)
	buf.WriteString(strconv.Itoa(pg.Current) + " of " + strconv.Itoa(pg.Total))
	buf.WriteString(`</span>`)
	if pg.HasNext() {
		writeLink(buf, pg.NextHref, "", `rel="next"`, "Next")
	} else {
		buf.WriteString(`<button class="cursor-auto disabled:opacity-50" disabled>Next</button>`)
	}
	buf.WriteString(`</nav></div>`)
}
