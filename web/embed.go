// Package web provides the embedded static assets (CSS) for the site,
// served at /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// Static returns the static/ tree rooted so that "css/site.css" resolves
// to web/static/css/site.css.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
