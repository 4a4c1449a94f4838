package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportdoc/internal/config"
)

func TestRunDemoWritesEveryFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.*")

	require.NoError(t, runDemo(config.Default(), out))

	html, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	require.Contains(t, string(html), "<title>Report</title>")
	require.Contains(t, string(html), "Media")
	require.Contains(t, string(html), "data:image/png;base64,")

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	require.Contains(t, string(md), "# Report")
	require.Contains(t, string(md), "| Feature | Call |")

	// Markdown externalized its media as sibling files.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var siblings int
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".png", ".gif", ".jpg":
			siblings++
		}
	}
	require.Greater(t, siblings, 0)
}

func TestGradientFrameShape(t *testing.T) {
	f := gradientFrame(8, 4, 0)
	require.NoError(t, f.Validate())
	require.Equal(t, 8*4*3, len(f.Pix))
}
