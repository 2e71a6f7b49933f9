package export

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// deriveFilename builds the artifact filename from the dashboard title:
// lower-cased, each whitespace run collapsed to a single underscore, plus
// the format extension. An empty title falls back to "dashboard".
func deriveFilename(title string, format Format) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = whitespaceRun.ReplaceAllString(name, "_")
	if name == "" {
		name = "dashboard"
	}
	return name + "." + Extension(format)
}
