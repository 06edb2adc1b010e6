package views

import (
	"bytes"
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// TagIndex lists every tag with its post count, most used first.
func TagIndex(env Env, counts map[string]int) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<div class="flex flex-col items-start justify-start md:mt-24 md:flex-row md:items-center md:justify-center md:space-x-6">`)
		buf.WriteString(`<div class="space-x-2 pb-8 pt-6 md:space-y-5"><h1 class="text-3xl font-extrabold leading-9 tracking-tight md:border-r-2 md:px-6 md:text-6xl">Tags</h1></div>`)
		buf.WriteString(`<div class="tag-index flex max-w-lg flex-wrap">`)
		sorted := SortTags(counts)
		if len(sorted) == 0 {
			buf.WriteString(`<p>No tags found.</p>`)
		}
		for _, tc := range sorted {
			buf.WriteString(`<div class="mb-2 mr-5 mt-2">`)
			writeTag(buf, tc.Tag)
			writeLink(buf, TagHref(tc.Tag), "-ml-2 text-sm font-semibold uppercase text-gray-600 dark:text-gray-300",
				`aria-label="`+esc("View posts tagged "+tc.Tag)+`"`, " ("+strconv.Itoa(tc.Count)+")")
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div></div>`)
		return nil
	})
}
