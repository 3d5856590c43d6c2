// Package resource loads, filters and saves Android-style string resource files.
package resource

import "path/filepath"

// Entry is a single <string> element of a resource file.
type Entry struct {
	Name         string
	Text         string
	Translatable bool

	sourceFile string
}

// NewEntry creates an entry belonging to the given source identifier.
func NewEntry(name, text, sourceFile string, translatable bool) *Entry {
	return &Entry{
		Name:         name,
		Text:         text,
		Translatable: translatable,
		sourceFile:   sourceFile,
	}
}

// SourceFile returns the "<dir>/<file>" identifier of the file the entry came from.
func (e *Entry) SourceFile() string {
	return e.sourceFile
}

// SourceID returns the two-segment identifier used to group entries by project,
// e.g. "/home/me/Strings/Qute/strings.xml" -> "Qute/strings.xml".
func SourceID(path string) string {
	clean := filepath.Clean(path)
	return filepath.Base(filepath.Dir(clean)) + "/" + filepath.Base(clean)
}
