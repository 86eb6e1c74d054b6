package listfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank lines only", "\n  \n\t\n", nil},
		{"simple", "Alien\nHeat\nBrazil\n", []string{"Alien", "Heat", "Brazil"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trims whitespace", "  Alien \r\n\tHeat\r\n", []string{"Alien", "Heat"}},
		{"keeps first duplicate", "b\na\nb\nc\na\n", []string{"b", "a", "c"}},
		{"inner spaces kept", "The Thing\n", []string{"The Thing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alien\n\nHeat\n"), 0o644))

	items, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alien", "Heat"}, items)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Operation)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"a", "b"}))
	assert.Equal(t, "a\nb\n", buf.String())

	items, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}
