// Package render contains the per-format encoders that turn semantic document
// elements (headings, paragraphs, tables, media, ...) into markup fragments.
// A Backend is one target format; HTML and Markdown are provided.
package render

import (
	"runtime/debug"
	"strings"

	"git.home.luguber.info/inful/reportdoc/internal/assets"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

// Backend encodes one element per call into a markup fragment for a single
// target format. Encoders are stateless; the only side effect is writing
// externalized media through the supplied asset store.
type Backend interface {
	// Name identifies the backend ("html", "markdown") in errors and logs.
	Name() string

	// Ext is the document file extension (without dot) for this backend.
	Ext() string

	// Heading renders a section heading. Levels below 1 clamp to 1.
	Heading(text string, level int) string

	// Paragraph renders free text. Indent shifts the block right by
	// opts.Indent nesting levels.
	Paragraph(text string, opts TextOptions) string

	// InfoBox renders a visually distinct callout block.
	InfoBox(text string, opts TextOptions) string

	// Code renders a preformatted code block, optionally tagged with a
	// language hint for syntax highlighting.
	Code(text, lang string) string

	// Exception renders a caught error's kind, message and trace lines
	// through the same box mechanism as InfoBox.
	Exception(tr Trace) string

	// Image renders one image. Backends that cannot embed binary data
	// inline externalize it through store and reference the sibling file.
	Image(f imaging.Frame, store assets.Store, opts ImageOptions) (string, error)

	// Video renders a frame sequence at the given rate.
	Video(frames []imaging.Frame, fps float64, store assets.Store, opts VideoOptions) (string, error)

	// Table renders a header row plus body rows. Every body row must have
	// exactly len(header) cells.
	Table(header []string, body [][]string) (string, error)

	// Separator renders a horizontal rule.
	Separator() string

	// Render serializes accumulated fragments into the complete file body.
	Render(meta DocMeta, fragments []string) []byte
}

// DocMeta carries document-level presentation settings into Render.
type DocMeta struct {
	Title        string
	BrandColor   string
	ExtraCSS     string
	IncludeStyle bool
}

// TextOptions are per-call options for text blocks.
type TextOptions struct {
	// Indent is the nesting depth, >= 0. Markdown prefixes two spaces per
	// level; HTML wraps the block in an indented container.
	Indent int
}

// ImageOptions are per-call options for still images.
type ImageOptions struct {
	// BGR reverses the channel order of the first three channels before
	// encoding (for buffers produced by blue-first imaging libraries).
	BGR bool

	// External writes the image to a sibling file instead of embedding it
	// inline. Markdown always externalizes regardless of this flag.
	External bool

	// Encoding selects the still-image format; empty means PNG.
	Encoding imaging.Encoding

	// Style is an inline CSS fragment applied to the media tag.
	Style string

	// NewLine appends a line break after the media tag.
	NewLine bool
}

func (o ImageOptions) encoding() imaging.Encoding {
	if o.Encoding == "" {
		return imaging.EncodingPNG
	}
	return o.Encoding
}

// VideoOptions are per-call options for videos.
type VideoOptions struct {
	// External writes the video to a sibling file instead of embedding it
	// inline. Markdown always externalizes regardless of this flag.
	External bool

	// Style is an inline CSS fragment applied to the media tag.
	Style string

	// NewLine appends a line break after the media tag.
	NewLine bool
}

// Trace is the narrow contract for a caught error: its kind, message and
// stack trace lines. It is what AddException renders.
type Trace struct {
	Kind    string
	Message string
	Frames  []string
}

// NewTrace captures the current goroutine's stack for err. Kind is the
// error's category when it is a reportdoc error, "error" otherwise.
func NewTrace(err error, kind string) Trace {
	if kind == "" {
		kind = "error"
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	frames := strings.Split(strings.TrimRight(string(debug.Stack()), "\n"), "\n")
	return Trace{Kind: kind, Message: msg, Frames: frames}
}
