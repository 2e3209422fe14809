// Package static embeds the stylesheet and motion script served under /static.
package static

import "embed"

//go:embed alert.css motion.js
var FS embed.FS
