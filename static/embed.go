// Package staticfiles embeds the stylesheet and page scripts so the
// server ships as a single binary.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
