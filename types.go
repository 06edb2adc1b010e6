package pubview

import "github.com/eringen/pubview/views"

// Post is the content record rendered by the views. The content pipeline
// owns it; pubview only reads it.
type Post = views.Post

// TagCount is one row of the tag-frequency table.
type TagCount = views.TagCount
