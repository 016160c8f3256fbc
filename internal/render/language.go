// Package render formats collected files into fenced markdown blocks and
// composes the aggregated document.
package render

// displayTagByExtension maps a lowercase file extension to the language
// identifier attached to its fenced block. Extending the table is the only
// change needed to support another language.
var displayTagByExtension = map[string]string{
	"ts":   "typescript",
	"js":   "javascript",
	"html": "html",
	"json": "json",
	"css":  "css",
	"py":   "python",
}

// genericDisplayTag is used for every extension absent from the table,
// including the empty extension.
const genericDisplayTag = "text"

// DisplayTagForExtension returns the syntax-highlighting hint for a
// lowercase extension.
func DisplayTagForExtension(extension string) string {
	if displayTag, known := displayTagByExtension[extension]; known {
		return displayTag
	}
	return genericDisplayTag
}
