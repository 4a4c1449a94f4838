package document

import (
	"fmt"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
	"git.home.luguber.info/inful/reportdoc/internal/plot"
	"git.home.luguber.info/inful/reportdoc/internal/render"
)

// MultiDocument fans every call out to one Document per backend, in
// backend-declaration order, with identical arguments. Documents are
// append-only logs, not transactions: on failure every backend is still
// attempted, the successes keep their update, and an AggregateError lists
// each failing backend with its underlying error.
type MultiDocument struct {
	docs []*Document
}

// NewMulti creates one document per backend. The path carries a ".*"
// placeholder (or a bare stem); each backend's file gets its own extension.
func NewMulti(path string, backends []render.Backend, opts Options) (*MultiDocument, error) {
	if len(backends) == 0 {
		return nil, errors.Newf(errors.CategoryConfig, "multi document needs at least one backend")
	}
	stem := stemFor(path)
	m := &MultiDocument{}
	for i, b := range backends {
		docOpts := opts
		docOpts.Store = nil // each document owns its own sibling assets
		if i > 0 {
			docOpts.Echo = nil // echo once, not per backend
		}
		d, err := New(fmt.Sprintf("%s.%s", stem, b.Ext()), b, docOpts)
		if err != nil {
			return nil, err
		}
		m.docs = append(m.docs, d)
	}
	return m, nil
}

// Documents returns the underlying per-backend documents in declaration order.
func (m *MultiDocument) Documents() []*Document { return m.docs }

// fanOut applies fn to every backend document and aggregates failures.
func (m *MultiDocument) fanOut(op string, fn func(d *Document) error) error {
	var failed []errors.BackendError
	for _, d := range m.docs {
		if err := fn(d); err != nil {
			failed = append(failed, errors.BackendError{Backend: d.Backend(), Err: err})
		}
	}
	if len(failed) > 0 {
		return &errors.AggregateError{Op: op, Errors: failed}
	}
	return nil
}

// AddHeading appends a heading to every backend.
func (m *MultiDocument) AddHeading(text string, level int) error {
	return m.fanOut("add_heading", func(d *Document) error {
		return d.AddHeading(text, level)
	})
}

// AddParagraph appends free text to every backend.
func (m *MultiDocument) AddParagraph(text string, opts render.TextOptions) error {
	return m.fanOut("add_paragraph", func(d *Document) error {
		return d.AddParagraph(text, opts)
	})
}

// AddInfoBox appends a callout block to every backend.
func (m *MultiDocument) AddInfoBox(text string, opts render.TextOptions) error {
	return m.fanOut("add_infobox", func(d *Document) error {
		return d.AddInfoBox(text, opts)
	})
}

// AddCode appends a code block to every backend.
func (m *MultiDocument) AddCode(text, lang string) error {
	return m.fanOut("add_code", func(d *Document) error {
		return d.AddCode(text, lang)
	})
}

// AddException appends an error box to every backend.
func (m *MultiDocument) AddException(tr render.Trace) error {
	return m.fanOut("add_exception", func(d *Document) error {
		return d.AddException(tr)
	})
}

// AddImage appends an image to every backend. Each backend externalizes
// into its own sibling files, so per-backend failures stay independent.
func (m *MultiDocument) AddImage(f imaging.Frame, opts render.ImageOptions) error {
	return m.fanOut("add_image", func(d *Document) error {
		return d.AddImage(f, opts)
	})
}

// AddPlot captures the active figure once and appends it to every backend.
func (m *MultiDocument) AddPlot(src plot.FigureSource, opts render.ImageOptions) error {
	if src == nil {
		return errors.Encoding("no figure source provided")
	}
	f, err := src.CurrentFigure()
	if err != nil {
		return err
	}
	return m.fanOut("add_plot", func(d *Document) error {
		return d.AddImage(f, opts)
	})
}

// AddVideo appends a video to every backend.
func (m *MultiDocument) AddVideo(frames []imaging.Frame, fps float64, opts render.VideoOptions) error {
	return m.fanOut("add_video", func(d *Document) error {
		return d.AddVideo(frames, fps, opts)
	})
}

// AddTable appends a table to every backend.
func (m *MultiDocument) AddTable(header []string, body [][]string) error {
	return m.fanOut("add_table", func(d *Document) error {
		return d.AddTable(header, body)
	})
}

// AddSeparator appends a horizontal rule to every backend.
func (m *MultiDocument) AddSeparator() error {
	return m.fanOut("add_separator", func(d *Document) error {
		return d.AddSeparator()
	})
}

// Flush writes every backend document to disk.
func (m *MultiDocument) Flush() error {
	return m.fanOut("flush", func(d *Document) error {
		return d.Flush()
	})
}
