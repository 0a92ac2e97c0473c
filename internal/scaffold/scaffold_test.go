package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIndexHTML_CreatesMissing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist", "nested")

	written, err := EnsureIndexHTML(out, "local", "app.js")
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<title>local</title>")
	assert.Contains(t, html, `<script src="./app.js"></script>`)
	assert.Contains(t, html, `<body style="margin: 0; padding: 0;">`)
}

func TestEnsureIndexHTML_KeepsExisting(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join(out, IndexFile)
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0600))

	written, err := EnsureIndexHTML(out, "local", "app.js")
	require.NoError(t, err)
	assert.False(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}

func TestRenderIndex_EscapesTitle(t *testing.T) {
	data, err := RenderIndex("<dev>", "app.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>&lt;dev&gt;</title>")
}
