// Package web provides the embedded studio page.
package web

import "embed"

//go:embed index.html
var FS embed.FS
