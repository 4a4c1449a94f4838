package inline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	f := imaging.Frame{W: 2, H: 2, C: 3, Pix: make([]byte, 12)}
	for i := range f.Pix {
		f.Pix[i] = byte(i * 10)
	}
	data, err := imaging.Encode(f, imaging.EncodingPNG)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileInlinesMarkdownImageLink(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "report_0.png"))
	path := writeMarkdown(t, dir, "report.md",
		"# Title\n\n![report_0.png](report_0.png)\n")

	res, err := File(path, imaging.EncodingPNG)
	require.NoError(t, err)
	require.Equal(t, 2, res.Inlined) // alt text and destination both match
	require.Len(t, res.Removed, 1)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), "data:image/png;base64,")
	require.NotContains(t, string(out), "(report_0.png)")

	_, err = os.Stat(filepath.Join(dir, "report_0.png"))
	require.True(t, os.IsNotExist(err), "consumed sibling file should be removed")
}

func TestFileInlinesRawImgTag(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "pic.png"))
	path := writeMarkdown(t, dir, "doc.md",
		"intro\n\n<img style='width:32%' src='pic.png'>\n")

	res, err := File(path, imaging.EncodingJPEG)
	require.NoError(t, err)
	require.Equal(t, 1, res.Inlined)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), "src='data:image/jpeg;base64,")
	require.Contains(t, string(out), "style='width:32%'")
}

func TestFileSkipsRemoteAndDataRefs(t *testing.T) {
	dir := t.TempDir()
	content := "![a](https://example.com/a.png)\n\n" +
		"<img src='data:image/png;base64,AQID'>\n"
	path := writeMarkdown(t, dir, "doc.md", content)

	res, err := File(path, imaging.EncodingPNG)
	require.NoError(t, err)
	require.Equal(t, 0, res.Inlined)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(out))
}

func TestFileSkipsMissingAsset(t *testing.T) {
	dir := t.TempDir()
	path := writeMarkdown(t, dir, "doc.md", "![x](gone.png)\n")

	res, err := File(path, imaging.EncodingPNG)
	require.NoError(t, err)
	require.Equal(t, 0, res.Inlined)
}

func TestDirProcessesAllMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a_0.png"))
	writePNG(t, filepath.Join(dir, "b_0.png"))
	writeMarkdown(t, dir, "a.md", "![i](a_0.png)\n")
	writeMarkdown(t, dir, "b.md", "![i](b_0.png)\n")
	writeMarkdown(t, dir, "notes.txt", "![i](a_0.png)\n")

	results, err := Dir(dir, imaging.EncodingPNG)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		require.Greater(t, res.Inlined, 0, "expected inlining in %s", res.Path)
	}
}

func TestApplyEditsOrdering(t *testing.T) {
	src := []byte("aa bb aa")
	out, err := applyEdits(src, []edit{
		{Start: 0, End: 2, Replacement: []byte("XX")},
		{Start: 6, End: 8, Replacement: []byte("YY")},
	})
	require.NoError(t, err)
	require.Equal(t, "XX bb YY", string(out))
}

func TestApplyEditsRejectsOverlap(t *testing.T) {
	src := []byte("abcdef")
	_, err := applyEdits(src, []edit{
		{Start: 0, End: 4, Replacement: []byte("x")},
		{Start: 2, End: 6, Replacement: []byte("y")},
	})
	require.Error(t, err)
}

func TestApplyEditsRejectsOutOfBounds(t *testing.T) {
	_, err := applyEdits([]byte("ab"), []edit{{Start: 0, End: 5}})
	require.Error(t, err)
}

func TestFindOccurrences(t *testing.T) {
	edits := findOccurrences([]byte("x.png and x.png"), []byte("x.png"), []byte("URI"))
	require.Len(t, edits, 2)
	require.Equal(t, 0, edits[0].Start)
	require.Equal(t, 10, edits[1].Start)
}

func TestImageRefsFindsBothForms(t *testing.T) {
	src := []byte("![alt](one.png)\n\n<image src='two.png'>\n")
	refs := imageRefs(src)
	require.Contains(t, refs, "one.png")
	require.Contains(t, refs, "two.png")
}

func TestLocalRef(t *testing.T) {
	require.True(t, localRef("img.png"))
	require.True(t, localRef("sub/img.png"))
	require.False(t, localRef("https://x/img.png"))
	require.False(t, localRef("data:image/png;base64,AA"))
	require.False(t, localRef("/abs/img.png"))
	require.False(t, localRef("../escape.png"))
}

func TestInlinedDocumentIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "p.png"))
	path := writeMarkdown(t, dir, "doc.md", "![img](p.png)\n")

	_, err := File(path, imaging.EncodingPNG)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := File(path, imaging.EncodingPNG)
	require.NoError(t, err)
	require.Equal(t, 0, res.Inlined)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))

	require.False(t, strings.Contains(string(first), "(p.png)"))
}
