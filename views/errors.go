package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// NotFound is the 404 page.
func NotFound(env Env) templ.Component {
	return Page(env, PageMeta{Title: "Not Found"}, errorBody("404", "Sorry we couldn't find this page."))
}

// ServerError is the 500 page.
func ServerError(env Env) templ.Component {
	return Page(env, PageMeta{Title: "Server Error"}, errorBody("500", "Something went wrong on our side."))
}

func errorBody(code, message string) templ.Component {
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<div class="flex flex-col items-start justify-start md:mt-24 md:flex-row md:items-center md:justify-center md:space-x-6"><div class="space-x-2 pb-8 pt-6 md:space-y-5"><h1 class="text-6xl font-extrabold leading-9 tracking-tight md:border-r-2 md:px-6 md:text-8xl md:leading-14">`)
		buf.WriteString(code)
		buf.WriteString(`</h1></div><div class="max-w-md"><p class="mb-4 text-xl font-bold leading-normal md:text-2xl">`)
		buf.WriteString(esc(message))
		buf.WriteString(`</p><a href="/" class="inline rounded-lg border border-transparent bg-blue-600 px-4 py-2 text-sm font-medium leading-5 text-white">Back to homepage</a></div></div>`)
		return nil
	})
}
