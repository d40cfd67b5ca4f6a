package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotevault/internal/config"
)

func TestWriter_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	w, closer := Writer(config.Logging{}, &console)

	_, err := fmt.Fprint(w, "hello")
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	assert.Equal(t, "hello", console.String())
}

func TestWriter_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quotevault.log")

	var console bytes.Buffer
	w, closer := Writer(config.Logging{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, &console)

	_, err := fmt.Fprintln(w, "Library loaded")
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	assert.Equal(t, "Library loaded\n", console.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Library loaded\n", string(data))
}
