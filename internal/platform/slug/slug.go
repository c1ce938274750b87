package slug

import (
	"regexp"
	"strings"
)

var (
	separators = regexp.MustCompile(`[\s-]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9_]+`)
)

// Sanitize turns an exercise name into the stable key used for file and
// directory names: lower-case, spaces and hyphens become underscores, and
// anything outside [a-z0-9_] is dropped.
func Sanitize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = separators.ReplaceAllString(s, "_")
	return disallowed.ReplaceAllString(s, "")
}
