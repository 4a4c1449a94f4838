// Package document owns the accumulating fragment log behind every report:
// one Document per output file, plus MultiDocument for fanning a single call
// sequence out to several formats at once.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/reportdoc/internal/assets"
	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
	"git.home.luguber.info/inful/reportdoc/internal/plot"
	"git.home.luguber.info/inful/reportdoc/internal/render"
)

// Options configure a Document at construction. The zero value is usable.
type Options struct {
	// Title, when set, is emitted as a level-1 heading on creation.
	Title string

	// Author, when set, is emitted as an "Author: ..." infobox on creation.
	Author string

	// BrandColor is the accent color substituted into the style sheet.
	// Empty selects the default.
	BrandColor string

	// ExtraCSS is appended to the default style sheet.
	ExtraCSS string

	// OmitStyle leaves the style sheet out of the output.
	OmitStyle bool

	// NoAutoFlush defers document writes to an explicit Flush call.
	// Sibling asset writes always happen at add time.
	NoAutoFlush bool

	// Echo mirrors every appended fragment to this writer (typically
	// stdout). Nil disables echoing.
	Echo io.Writer

	// Store overrides the sibling asset store; nil selects a filesystem
	// store next to the document file.
	Store assets.Store
}

// Document is an append-only sequence of rendered fragments bound to one
// output file. Every Add call validates its input, encodes the element
// through the backend, appends the fragment and (by default) rewrites the
// file. Appended fragments are never mutated.
//
// A Document is not safe for concurrent use; callers needing concurrent
// authoring must serialize access themselves.
type Document struct {
	path      string
	backend   render.Backend
	store     assets.Store
	meta      render.DocMeta
	autoFlush bool
	echo      io.Writer
	fragments []string
}

// New creates a document for the given backend. The path extension must
// match the backend's format.
func New(path string, backend render.Backend, opts Options) (*Document, error) {
	wantExt := "." + backend.Ext()
	if filepath.Ext(path) != wantExt {
		return nil, errors.Newf(errors.CategoryConfig,
			"document path %q must end in %s for the %s backend",
			path, wantExt, backend.Name())
	}
	store := opts.Store
	if store == nil {
		store = assets.NewFSStore(path)
	}
	d := &Document{
		path:    path,
		backend: backend,
		store:   store,
		meta: render.DocMeta{
			Title:        opts.Title,
			BrandColor:   opts.BrandColor,
			ExtraCSS:     opts.ExtraCSS,
			IncludeStyle: !opts.OmitStyle,
		},
		autoFlush: !opts.NoAutoFlush,
		echo:      opts.Echo,
	}
	if opts.Title != "" {
		if err := d.AddHeading(opts.Title, 1); err != nil {
			return nil, err
		}
	}
	if opts.Author != "" {
		if err := d.AddInfoBox(fmt.Sprintf("Author: %s", opts.Author), render.TextOptions{}); err != nil {
			return nil, err
		}
	}
	if d.autoFlush && len(d.fragments) == 0 {
		// Materialize the (empty) document so the file exists from the start.
		if err := d.Flush(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Path returns the document's output file location.
func (d *Document) Path() string { return d.path }

// Backend returns the backend name ("html", "markdown").
func (d *Document) Backend() string { return d.backend.Name() }

// Fragments returns a copy of the accumulated fragment log.
func (d *Document) Fragments() []string {
	out := make([]string, len(d.fragments))
	copy(out, d.fragments)
	return out
}

// AssetCount returns how many sibling assets were externalized so far.
func (d *Document) AssetCount() int { return d.store.Count() }

// AddHeading appends a heading. Levels below 1 clamp to 1.
func (d *Document) AddHeading(text string, level int) error {
	return d.append(d.backend.Heading(text, level))
}

// AddParagraph appends free text.
func (d *Document) AddParagraph(text string, opts render.TextOptions) error {
	if err := checkIndent(opts.Indent); err != nil {
		return err
	}
	return d.append(d.backend.Paragraph(text, opts))
}

// AddInfoBox appends a visually distinct callout block.
func (d *Document) AddInfoBox(text string, opts render.TextOptions) error {
	if err := checkIndent(opts.Indent); err != nil {
		return err
	}
	return d.append(d.backend.InfoBox(text, opts))
}

// AddCode appends a preformatted code block. lang is an optional syntax
// highlighting hint.
func (d *Document) AddCode(text, lang string) error {
	return d.append(d.backend.Code(text, lang))
}

// AddException appends a caught error's kind, message and trace lines as a
// distinguished box.
func (d *Document) AddException(tr render.Trace) error {
	return d.append(d.backend.Exception(tr))
}

// AddImage encodes and appends one image. Backends that cannot embed binary
// data write a sibling file at call time and reference it.
func (d *Document) AddImage(f imaging.Frame, opts render.ImageOptions) error {
	frag, err := d.backend.Image(f, d.store, opts)
	if err != nil {
		return err
	}
	return d.append(frag)
}

// AddPlot captures the source's currently active figure and appends it as
// an image.
func (d *Document) AddPlot(src plot.FigureSource, opts render.ImageOptions) error {
	if src == nil {
		return errors.Encoding("no figure source provided")
	}
	f, err := src.CurrentFigure()
	if err != nil {
		return err
	}
	return d.AddImage(f, opts)
}

// AddVideo encodes the frame sequence at the given rate and appends it.
func (d *Document) AddVideo(frames []imaging.Frame, fps float64, opts render.VideoOptions) error {
	frag, err := d.backend.Video(frames, fps, d.store, opts)
	if err != nil {
		return err
	}
	return d.append(frag)
}

// AddTable appends a table. Every body row must match the header width.
func (d *Document) AddTable(header []string, body [][]string) error {
	frag, err := d.backend.Table(header, body)
	if err != nil {
		return err
	}
	return d.append(frag)
}

// AddSeparator appends a horizontal rule.
func (d *Document) AddSeparator() error {
	return d.append(d.backend.Separator())
}

// Flush serializes the full fragment log to the document file.
// With auto-flush (the default) this happens after every add.
func (d *Document) Flush() error {
	data := d.backend.Render(d.meta, d.fragments)
	if err := os.WriteFile(d.path, data, 0644); err != nil {
		return errors.Filesystem(err, "write document").
			WithContext("path", d.path).
			WithContext("backend", d.backend.Name())
	}
	return nil
}

func (d *Document) append(fragment string) error {
	d.fragments = append(d.fragments, fragment)
	if d.echo != nil {
		fmt.Fprintln(d.echo, fragment)
	}
	if d.autoFlush {
		return d.Flush()
	}
	return nil
}

func checkIndent(indent int) error {
	if indent < 0 {
		return errors.Encoding("indent must be >= 0, got %d", indent)
	}
	return nil
}

// stemFor strips a trailing ".*" or extension from a multi-document path.
func stemFor(path string) string {
	if strings.HasSuffix(path, ".*") {
		return strings.TrimSuffix(path, ".*")
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
