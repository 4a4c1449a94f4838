package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportdoc/internal/assets"
	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

func TestHTMLHeadingLevels(t *testing.T) {
	h := HTML{}
	for level := 1; level <= 6; level++ {
		want := fmt.Sprintf("<h%d>Title</h%d>", level, level)
		require.Equal(t, want, h.Heading("Title", level))
	}
}

func TestHTMLHeadingClamps(t *testing.T) {
	h := HTML{}
	require.Equal(t, "<h1>Title</h1>", h.Heading("Title", 0))
	require.Equal(t, "<h1>Title</h1>", h.Heading("Title", -2))
	require.Equal(t, "<h6>Title</h6>", h.Heading("Title", 9))
}

func TestHTMLParagraph(t *testing.T) {
	h := HTML{}
	require.Equal(t, "<p>hi</p>", h.Paragraph("hi", TextOptions{}))
}

func TestHTMLParagraphIndent(t *testing.T) {
	h := HTML{}
	got := h.Paragraph("hi", TextOptions{Indent: 2})
	require.Equal(t, "<div style='margin-left:4em'><p>hi</p></div>", got)
}

func TestHTMLInfoBox(t *testing.T) {
	h := HTML{}
	require.Equal(t, "<blockquote>note</blockquote>", h.InfoBox("note", TextOptions{}))
}

func TestHTMLCode(t *testing.T) {
	h := HTML{}
	require.Equal(t, "<pre>x</pre>", h.Code("x", ""))
	require.Equal(t, "<pre><code class='language-go'>x</code></pre>", h.Code("x", "go"))
}

func TestHTMLException(t *testing.T) {
	h := HTML{}
	got := h.Exception(Trace{Kind: "structure", Message: "row mismatch", Frames: []string{"f1", "f2"}})
	require.Contains(t, got, "<blockquote><b>structure: row mismatch</b>")
	require.Contains(t, got, "<pre>f1\nf2</pre>")
}

func TestHTMLImageEmbedsDataURI(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	frag, err := h.Image(testFrame(), store, ImageOptions{})
	require.NoError(t, err)
	require.Contains(t, frag, "src='data:image/png;base64,")
	// no sibling file written
	require.Equal(t, 0, store.Count())
}

func TestHTMLImageExternal(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	frag, err := h.Image(testFrame(), store, ImageOptions{External: true, Encoding: imaging.EncodingJPEG})
	require.NoError(t, err)
	require.Contains(t, frag, "src='doc_0.jpg'")
	require.Equal(t, 1, store.Count())
}

func TestHTMLImageInvalidFrame(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	_, err := h.Image(imaging.Frame{W: 0, H: 0, C: 3}, store, ImageOptions{})
	require.Error(t, err)
	require.Equal(t, errors.CategoryEncoding, errors.GetCategory(err))
}

func TestHTMLImageNewLine(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	frag, err := h.Image(testFrame(), store, ImageOptions{NewLine: true})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(frag, "\n<br>"))
}

func TestHTMLVideoEmbedsGIF(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	frag, err := h.Video([]imaging.Frame{testFrame(), testFrame()}, 12, store, VideoOptions{})
	require.NoError(t, err)
	require.Contains(t, frag, "data:image/gif;base64,")
}

func TestHTMLVideoRejectsEmptySequence(t *testing.T) {
	h := HTML{}
	store := assets.NewMockStore("doc")

	_, err := h.Video(nil, 12, store, VideoOptions{})
	require.Error(t, err)
	require.Equal(t, errors.CategoryEncoding, errors.GetCategory(err))
}

func TestHTMLTableStructure(t *testing.T) {
	h := HTML{}
	got, err := h.Table([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	require.Equal(t, 1, strings.Count(got, "<thead>"))
	// one header row plus body rows
	require.Equal(t, 3, strings.Count(got, "<tr>"))
	require.Equal(t, 2, strings.Count(got, "<th>"))
	require.Equal(t, 4, strings.Count(got, "<td>"))
}

func TestHTMLTableShapeMismatch(t *testing.T) {
	h := HTML{}
	_, err := h.Table([]string{"A"}, [][]string{{"1", "2"}})
	require.Error(t, err)
	require.Equal(t, errors.CategoryStructure, errors.GetCategory(err))
}

func TestHTMLSeparator(t *testing.T) {
	require.Equal(t, "<hr>", HTML{}.Separator())
}

func TestHTMLRenderShell(t *testing.T) {
	out := string(HTML{}.Render(DocMeta{Title: "Report", BrandColor: "#123456"}, []string{"<p>x</p>"}))
	require.Contains(t, out, "<title>Report</title>")
	require.Contains(t, out, "#123456")
	require.Contains(t, out, "<div class=\"content\">\n<p>x</p>\n</div>")
}

func TestStyleSheetCollapsesWhitespace(t *testing.T) {
	css := StyleSheet("", "")
	require.NotContains(t, css, "\n")
	require.NotContains(t, css, "  ")
	require.Contains(t, css, DefaultBrandColor)
}

func TestSpanComposesAttributes(t *testing.T) {
	got := Span("World", SpanOptions{Color: "#612F45", Bold: true, Size: "1.2em"})
	require.Contains(t, got, "font-weight:bold;")
	require.Contains(t, got, "font-size:1.2em;")
	require.Contains(t, got, "color:#612F45;")
	require.True(t, strings.HasPrefix(got, "<span style='"))
	require.True(t, strings.HasSuffix(got, ">World</span>"))
}

func TestSpanPlain(t *testing.T) {
	require.Equal(t, "<span>x</span>", Span("x", SpanOptions{}))
}

func TestNewTraceCapturesStack(t *testing.T) {
	tr := NewTrace(errors.Encoding("boom"), "encoding")
	require.Equal(t, "encoding", tr.Kind)
	require.Contains(t, tr.Message, "boom")
	require.NotEmpty(t, tr.Frames)
}
