package render

import (
	"fmt"
	"strings"
)

// DefaultStyle is the stylesheet written into generated documents.
// {brand_color} is substituted with the document's brand color.
const DefaultStyle = `
body {
    background-color: #AAAAAA;
}
.content {
    max-width: 800px;
    background-color: #FFFFFF;
    margin: auto;
    margin-top: 1em;
    margin-bottom: 1em;
    padding-left: 2em;
    padding-right: 2em;
    padding-bottom: 3em;
    border-radius: 0.3em;
    box-shadow: 0 0 20px rgba(0, 0, 0, 0.15);
}
img, video {
    max-width: 100%;
    border-radius: 0.3em;
    box-shadow: 0 0 20px rgba(0, 0, 0, 0.15);
    margin-top: 0.75em;
    margin-bottom: 0.75em;
}
p {
    margin-top: 0.2em;
    margin-bottom: 0.5em;
    line-height: 1.5em;
}
h1, h2, h3, h4, h5, h6 {
    color: {brand_color};
    padding-top: 2em;
    margin-top: 0em;
    margin-bottom: 0.5em;
}
h1:first-child {
    padding-top: 1.2em;
}
h1 {
    border-bottom: 1px solid gray;
}
blockquote {
    border-left: 4px solid {brand_color};
    padding: 0.6em;
    padding-left: 1em;
    border-radius: 0.3em;
    margin-left: 0.5em;
    margin-right: 0.5em;
    background-color: whitesmoke;
    box-shadow: 0 0 6px rgba(0, 0, 0, 0.15);
    margin-top: 0.5em;
    margin-bottom: 0.5em;
}
pre {
    max-width: 100%;
    overflow: auto;
    background-color: #EEEEEE;
    border-radius: 0.3em;
    padding: 1em;
    box-shadow: 0 0 6px rgba(0, 0, 0, 0.15);
    line-height: 1.5em;
}
table {
    border-collapse: collapse;
    font-size: 0.9em;
    font-family: sans-serif;
    min-width: 400px;
    max-width: 100%;
    overflow: auto;
    box-shadow: 0 0 20px rgba(0, 0, 0, 0.15);
}
thead tr {
    background-color: {brand_color};
    color: #ffffff;
    text-align: left;
}
th,
td {
    padding: 12px 15px;
}
tbody tr {
    border-bottom: 1px solid #dddddd;
}
tbody tr:nth-of-type(even) {
    background-color: #f3f3f3;
}
tbody tr:last-of-type {
    border-bottom: 2px solid {brand_color};
}
`

// DefaultBrandColor is used when a document does not specify one.
const DefaultBrandColor = "#071C4C"

// StyleSheet substitutes the brand color into the default stylesheet,
// appends extra CSS, and collapses whitespace so the sheet fits on one line.
func StyleSheet(brandColor, extra string) string {
	if brandColor == "" {
		brandColor = DefaultBrandColor
	}
	css := strings.ReplaceAll(DefaultStyle, "{brand_color}", brandColor)
	if extra != "" {
		css = css + "\n" + extra
	}
	css = strings.ReplaceAll(css, "\n", " ")
	for strings.Contains(css, "  ") {
		css = strings.ReplaceAll(css, "  ", " ")
	}
	return strings.TrimSpace(css)
}

// SpanOptions control the Span inline-formatting helper.
type SpanOptions struct {
	Color      string
	Background string
	Size       string
	Bold       bool
	Italic     bool
	Style      string
	CSSClass   string
}

// Span wraps text in a styled <span> for inline formatting inside
// paragraphs. The output is trusted markup in both backends.
func Span(text string, opts SpanOptions) string {
	style := opts.Style
	if opts.Color != "" {
		style = fmt.Sprintf("color:%s;%s", opts.Color, style)
	}
	if opts.Background != "" {
		style = fmt.Sprintf("background-color:%s;%s", opts.Background, style)
	}
	if opts.Size != "" {
		style = fmt.Sprintf("font-size:%s;%s", opts.Size, style)
	}
	if opts.Bold {
		style = "font-weight:bold;" + style
	}
	if opts.Italic {
		style = "font-style:italic;" + style
	}
	attrs := ""
	if style != "" {
		attrs = fmt.Sprintf(" style='%s'", style)
	}
	if opts.CSSClass != "" {
		attrs += fmt.Sprintf(" class='%s'", opts.CSSClass)
	}
	return fmt.Sprintf("<span%s>%s</span>", attrs, text)
}
