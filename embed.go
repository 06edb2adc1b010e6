package pubview

import "embed"

// EmbeddedAssets contains the stylesheet shipped with pubview (site.css).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
