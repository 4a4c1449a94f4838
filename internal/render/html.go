package render

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/reportdoc/internal/assets"
	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

const htmlShell = `<html>
<head>
<title>%s</title>
<style>%s</style>
</head>
<body>
<div class="content">
%s
</div>
</body>
</html>
`

// HTML is the HTML backend. Media is embedded inline as base64 data URIs
// unless the caller asks for a sibling file.
type HTML struct{}

func (HTML) Name() string { return "html" }

func (HTML) Ext() string { return "html" }

func (HTML) Heading(text string, level int) string {
	level = clampLevel(level, 6)
	return fmt.Sprintf("<h%d>%s</h%d>", level, text, level)
}

func (HTML) Paragraph(text string, opts TextOptions) string {
	p := fmt.Sprintf("<p>%s</p>", text)
	if opts.Indent > 0 {
		p = fmt.Sprintf("<div style='margin-left:%dem'>%s</div>", 2*opts.Indent, p)
	}
	return p
}

func (HTML) InfoBox(text string, opts TextOptions) string {
	box := fmt.Sprintf("<blockquote>%s</blockquote>", text)
	if opts.Indent > 0 {
		box = fmt.Sprintf("<div style='margin-left:%dem'>%s</div>", 2*opts.Indent, box)
	}
	return box
}

func (HTML) Code(text, lang string) string {
	if lang != "" {
		return fmt.Sprintf("<pre><code class='language-%s'>%s</code></pre>", lang, text)
	}
	return fmt.Sprintf("<pre>%s</pre>", text)
}

func (HTML) Exception(tr Trace) string {
	return fmt.Sprintf("<blockquote><b>%s: %s</b><pre>%s</pre></blockquote>",
		tr.Kind, tr.Message, strings.Join(tr.Frames, "\n"))
}

func (h HTML) Image(f imaging.Frame, store assets.Store, opts ImageOptions) (string, error) {
	if opts.BGR {
		f = f.BGR()
	}
	enc := opts.encoding()
	data, err := imaging.Encode(f, enc)
	if err != nil {
		return "", err
	}
	var src string
	if opts.External {
		name, err := store.Put(data, enc.Ext())
		if err != nil {
			return "", err
		}
		src = name
	} else {
		src = imaging.DataURI(enc.MIME(), data)
	}
	return mediaTag(src, opts.Style, opts.NewLine), nil
}

func (h HTML) Video(frames []imaging.Frame, fps float64, store assets.Store, opts VideoOptions) (string, error) {
	data, err := imaging.EncodeGIF(frames, fps)
	if err != nil {
		return "", err
	}
	var src string
	if opts.External {
		name, err := store.Put(data, "gif")
		if err != nil {
			return "", err
		}
		src = name
	} else {
		src = imaging.DataURI("image/gif", data)
	}
	return mediaTag(src, opts.Style, opts.NewLine), nil
}

func (HTML) Table(header []string, body [][]string) (string, error) {
	if err := checkTableShape(header, body); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range header {
		fmt.Fprintf(&sb, "<th>%s</th>", cell)
	}
	sb.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range body {
		sb.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&sb, "<td>%s</td>", cell)
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>")
	return sb.String(), nil
}

func (HTML) Separator() string { return "<hr>" }

func (HTML) Render(meta DocMeta, fragments []string) []byte {
	style := StyleSheet(meta.BrandColor, meta.ExtraCSS)
	body := strings.Join(fragments, "\n")
	return []byte(fmt.Sprintf(htmlShell, meta.Title, style, body))
}

// mediaTag builds the shared <img> tag used for stills and GIF videos.
func mediaTag(src, style string, newLine bool) string {
	attr := ""
	if style != "" {
		attr = fmt.Sprintf(" style='%s'", style)
	}
	tag := fmt.Sprintf("<img class='image'%s src='%s'>", attr, src)
	if newLine {
		tag += "\n<br>"
	}
	return tag
}

// clampLevel clamps a heading level into [1, max].
func clampLevel(level, max int) int {
	if level < 1 {
		return 1
	}
	if max > 0 && level > max {
		return max
	}
	return level
}

// checkTableShape fails fast when any body row width differs from the header.
func checkTableShape(header []string, body [][]string) error {
	for i, row := range body {
		if len(row) != len(header) {
			return errors.Structure(
				"table row %d has %d cells, header has %d", i, len(row), len(header))
		}
	}
	return nil
}
