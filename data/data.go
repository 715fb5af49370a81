// Package data holds the pokemon and move tables that ship with the game
package data

import "embed"

//go:embed *.csv
var Files embed.FS
