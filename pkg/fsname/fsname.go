// Package fsname derives filesystem-safe display names.
package fsname

import "strings"

var replacer = strings.NewReplacer(
	"/", "_",
	":", "_",
	" ", "_",
)

// Sanitize replaces characters that are unsafe or awkward in download
// filenames with underscores.
func Sanitize(name string) string {
	return replacer.Replace(name)
}
