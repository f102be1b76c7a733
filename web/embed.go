// Package web holds the dashboard's HTML templates and static assets.
package web

import "embed"

// TemplatesFS carries the page and its HTMX fragments (tooltip.html defines
// the "tooltip" partial).
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS is served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
