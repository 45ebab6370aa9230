package exposition

import (
	"regexp"
	"strings"
)

var invalidNameCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_]`)
var underscoreRunRegex = regexp.MustCompile(`_+`)

// SanitizeName - Turn an arbitrary string into a lowercase metric or label name.
// The result only contains [a-z0-9_] and has no leading, trailing or repeated underscores.
// It may be empty.
func SanitizeName(name string) string {
	name = invalidNameCharRegex.ReplaceAllString(strings.ToLower(name), "_")
	name = underscoreRunRegex.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
