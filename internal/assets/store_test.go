package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSStoreNaming(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(filepath.Join(dir, "report.md"))

	want := []string{"report_0.png", "report_1.png", "report_2.png"}
	for i := 0; i < 3; i++ {
		name, err := store.Put([]byte{byte(i)}, "png")
		require.NoError(t, err)
		require.Equal(t, want[i], name)
	}
	require.Equal(t, 3, store.Count())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestFSStoreCounterSharedAcrossExtensions(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(filepath.Join(dir, "report.md"))

	name, err := store.Put([]byte("img"), "png")
	require.NoError(t, err)
	require.Equal(t, "report_0.png", name)

	name, err = store.Put([]byte("vid"), "gif")
	require.NoError(t, err)
	require.Equal(t, "report_1.gif", name)
}

func TestFSStoreFailureKeepsCounter(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(filepath.Join(dir, "missing", "report.md"))

	_, err := store.Put([]byte("x"), "png")
	require.Error(t, err)
	require.Equal(t, 0, store.Count())
}

func TestMockStoreRecordsPuts(t *testing.T) {
	store := NewMockStore("doc")

	name, err := store.Put([]byte("abc"), "png")
	require.NoError(t, err)
	require.Equal(t, "doc_0.png", name)
	require.Equal(t, []byte("abc"), store.Objects["doc_0.png"])
	require.Equal(t, 1, store.Puts)
}

func TestMockStoreFailWith(t *testing.T) {
	store := NewMockStore("doc")
	store.FailWith = errors.New("boom")

	_, err := store.Put([]byte("abc"), "png")
	require.Error(t, err)
	require.Equal(t, 0, store.Count())
	require.Equal(t, 1, store.Puts)
}
