// Package puzzles bundles the puzzles shipped with the game.
package puzzles

import (
	"embed"
	"io/fs"
)

//go:embed *.yaml *.fold
var files embed.FS

// FS returns the bundled puzzle files.
func FS() fs.FS {
	return files
}
