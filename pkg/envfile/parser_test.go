package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := `# Device configuration
GOOGLE_API_KEY=abc123

QUOTED="hello world"
SINGLE='single quoted'
WITH_EQUALS=a=b=c
  SPACED  =  trimmed
NOVALUE
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	vars, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", vars["GOOGLE_API_KEY"])
	assert.Equal(t, "hello world", vars["QUOTED"])
	assert.Equal(t, "single quoted", vars["SINGLE"])
	assert.Equal(t, "a=b=c", vars["WITH_EQUALS"])
	assert.Equal(t, "trimmed", vars["SPACED"])

	_, exists := vars["NOVALUE"]
	assert.False(t, exists, "lines without = should be skipped")
	_, exists = vars["# Device configuration"]
	assert.False(t, exists, "comments should be skipped")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParseString(t *testing.T) {
	vars, err := ParseString("KEY=value\n# comment\nOTHER=x")
	require.NoError(t, err)
	assert.Equal(t, "value", vars["KEY"])
	assert.Equal(t, "x", vars["OTHER"])
	assert.Len(t, vars, 2)
}
