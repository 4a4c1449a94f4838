package render

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/reportdoc/internal/assets"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

// Markdown is the Markdown backend. Binary media cannot live inline in
// Markdown source, so images and videos are always written as sibling files
// and referenced by relative filename.
type Markdown struct{}

func (Markdown) Name() string { return "markdown" }

func (Markdown) Ext() string { return "md" }

func (Markdown) Heading(text string, level int) string {
	level = clampLevel(level, 0)
	return strings.Repeat("#", level) + " " + text
}

func (Markdown) Paragraph(text string, opts TextOptions) string {
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	return indentLines(text, opts.Indent)
}

func (Markdown) InfoBox(text string, opts TextOptions) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return indentLines(strings.Join(lines, "\n"), opts.Indent)
}

func (Markdown) Code(text, lang string) string {
	return fmt.Sprintf("```%s\n%s\n```", lang, text)
}

func (Markdown) Exception(tr Trace) string {
	lines := []string{
		fmt.Sprintf("> **%s: %s**", tr.Kind, tr.Message),
		"> ```",
	}
	for _, frame := range tr.Frames {
		lines = append(lines, "> "+frame)
	}
	lines = append(lines, "> ```")
	return strings.Join(lines, "\n")
}

func (Markdown) Image(f imaging.Frame, store assets.Store, opts ImageOptions) (string, error) {
	if opts.BGR {
		f = f.BGR()
	}
	enc := opts.encoding()
	data, err := imaging.Encode(f, enc)
	if err != nil {
		return "", err
	}
	name, err := store.Put(data, enc.Ext())
	if err != nil {
		return "", err
	}
	return mdMediaRef(name, opts.Style, opts.NewLine), nil
}

func (Markdown) Video(frames []imaging.Frame, fps float64, store assets.Store, opts VideoOptions) (string, error) {
	data, err := imaging.EncodeGIF(frames, fps)
	if err != nil {
		return "", err
	}
	name, err := store.Put(data, "gif")
	if err != nil {
		return "", err
	}
	return mdMediaRef(name, opts.Style, opts.NewLine), nil
}

func (Markdown) Table(header []string, body [][]string) (string, error) {
	if err := checkTableShape(header, body); err != nil {
		return "", err
	}
	lines := []string{
		"| " + strings.Join(escapeCells(header), " | ") + " |",
		"| " + strings.Join(dashes(len(header)), " | ") + " |",
	}
	for _, row := range body {
		lines = append(lines, "| "+strings.Join(escapeCells(row), " | ")+" |")
	}
	return strings.Join(lines, "\n"), nil
}

func (Markdown) Separator() string { return "---" }

func (Markdown) Render(meta DocMeta, fragments []string) []byte {
	var sb strings.Builder
	if meta.IncludeStyle {
		// Some Markdown viewers honor an inline style sheet; those that do
		// not simply skip the tag.
		sb.WriteString(fmt.Sprintf("<style>%s</style>\n\n", StyleSheet(meta.BrandColor, meta.ExtraCSS)))
	}
	sb.WriteString(strings.Join(fragments, "\n\n"))
	sb.WriteString("\n")
	return []byte(sb.String())
}

// mdMediaRef references an externalized media file. Plain Markdown image
// syntax is used unless an inline style is requested, in which case a raw
// tag carries the style attribute.
func mdMediaRef(name, style string, newLine bool) string {
	var ref string
	if style != "" {
		ref = fmt.Sprintf("<img style='%s' src='%s'>", style, name)
	} else {
		ref = fmt.Sprintf("![%s](%s)", name, name)
	}
	if newLine {
		ref += "\n<br>"
	}
	return ref
}

// indentLines prefixes every line with two spaces per nesting level.
func indentLines(text string, indent int) string {
	if indent <= 0 {
		return text
	}
	prefix := strings.Repeat("  ", indent)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// escapeCells keeps cell text from breaking the pipe table.
func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", "/")
	}
	return out
}

func dashes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "---"
	}
	return out
}
