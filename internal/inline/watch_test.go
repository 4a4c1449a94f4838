package inline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

func TestWatchProcessesChangedFiles(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, imaging.EncodingPNG, 50*time.Millisecond)
	}()

	// Give the watcher time to register before producing events.
	time.Sleep(250 * time.Millisecond)

	writePNG(t, filepath.Join(dir, "p.png"))
	path := writeMarkdown(t, dir, "doc.md", "![i](p.png)\n")

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(data), "data:image/png;base64,")
	}, 5*time.Second, 100*time.Millisecond, "watcher should inline the new image")

	cancel()
	require.NoError(t, <-done)
}

func TestWatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Watch(ctx, t.TempDir(), imaging.EncodingPNG, 10*time.Millisecond)
	require.NoError(t, err)
}
