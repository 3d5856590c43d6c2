package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleA = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="hi">Hello</string>
    <string name="bye" translatable="false">Bye</string>
    <string name="greeting">Hello, %s!</string>
</resources>
`

const sampleB = `<resources>
    <string name="greeting">Ahoj, %s!</string>
    <string name="empty"></string>
</resources>
`

// writeResource creates dir/<project>/strings.xml with content and returns its path.
func writeResource(t *testing.T, dir, project, content string) string {
	t.Helper()
	path := filepath.Join(dir, project, "strings.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	return string(data)
}

type triple struct {
	name         string
	text         string
	translatable bool
}

func triples(entries []*Entry) []triple {
	out := make([]triple, 0, len(entries))
	for _, e := range entries {
		out = append(out, triple{e.Name, e.Text, e.Translatable})
	}
	return out
}
