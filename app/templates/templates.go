// Package templates embeds the HTML views so the binary runs from any directory.
package templates

import "embed"

//go:embed *.html layouts/*.html courses/*.html
var FS embed.FS
