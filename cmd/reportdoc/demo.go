package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/reportdoc/internal/config"
	"git.home.luguber.info/inful/reportdoc/internal/document"
	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
	"git.home.luguber.info/inful/reportdoc/internal/plot"
	"git.home.luguber.info/inful/reportdoc/internal/render"
)

const loremIpsum = "Lorem ipsum dolor sit amet, consetetur sadipscing elitr, " +
	"sed diam nonumy eirmod tempor invidunt ut labore et dolore magna aliquyam " +
	"erat, sed diam voluptua. At vero eos et accusam et justo duo dolores et " +
	"ea rebum. Stet clita kasd gubergren, no sea takimata sanctus est."

// runDemo writes one document per configured format, exercising every
// element type the library supports.
func runDemo(profile *config.Profile, out string) error {
	backends, err := profile.Backends()
	if err != nil {
		return err
	}
	opts := document.Options{
		Title:       profile.Title,
		Author:      profile.Author,
		BrandColor:  profile.BrandColor,
		ExtraCSS:    profile.CSS,
		OmitStyle:   profile.OmitStyle,
		NoAutoFlush: !profile.AutoFlushEnabled(),
	}
	if profile.Echo {
		opts.Echo = os.Stdout
	}
	doc, err := document.NewMulti(out, backends, opts)
	if err != nil {
		return err
	}

	steps := []func() error{
		func() error { return doc.AddHeading("Formatted Text", 2) },
		func() error {
			world := render.Span("World", render.SpanOptions{
				Color: "#6278AA", Bold: true, Italic: true, Size: "1.2em",
			})
			return doc.AddParagraph("Hello "+world+"!", render.TextOptions{})
		},
		func() error { return doc.AddParagraph(loremIpsum, render.TextOptions{}) },
		func() error { return doc.AddParagraph(loremIpsum, render.TextOptions{Indent: 1}) },
		func() error { return doc.AddHeading("Code / Exceptions", 2) },
		func() error { return doc.AddCode("go install git.home.luguber.info/inful/reportdoc@latest", "sh") },
		func() error {
			err := errors.Encoding("demonstration failure")
			return doc.AddException(render.NewTrace(err, string(errors.GetCategory(err))))
		},
		func() error { return doc.AddHeading("Table", 2) },
		func() error {
			return doc.AddTable(
				[]string{"Feature", "Call"},
				[][]string{
					{"Heading", "AddHeading(text, level)"},
					{"Paragraph", "AddParagraph(text, opts)"},
					{"Info", "AddInfoBox(text, opts)"},
					{"Image", "AddImage(frame, opts)"},
					{"Plot", "AddPlot(source, opts)"},
					{"Video", "AddVideo(frames, fps, opts)"},
					{"Code", "AddCode(text, lang)"},
					{"Separator", "AddSeparator()"},
					{"Exception", "AddException(trace)"},
				})
		},
		func() error { return doc.AddSeparator() },
		func() error { return doc.AddHeading("Media", 2) },
		func() error {
			return doc.AddImage(gradientFrame(96, 64, 0), render.ImageOptions{
				Style: "width:32%", NewLine: true,
			})
		},
		func() error {
			src := &plot.Static{Frame: gradientFrame(96, 64, 128), Active: true}
			return doc.AddPlot(src, render.ImageOptions{Style: "width:49%"})
		},
		func() error {
			frames := []imaging.Frame{
				gradientFrame(48, 48, 0),
				gradientFrame(48, 48, 64),
				gradientFrame(48, 48, 128),
				gradientFrame(48, 48, 192),
			}
			return doc.AddVideo(frames, 8, render.VideoOptions{Style: "width:49%", NewLine: true})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	if err := doc.Flush(); err != nil {
		return err
	}

	for _, d := range doc.Documents() {
		slog.Info("Document written", "backend", d.Backend(), "path", d.Path(),
			"fragments", len(d.Fragments()), "assets", d.AssetCount())
	}
	return nil
}

// gradientFrame produces a synthetic RGB test image with a phase offset so
// successive video frames visibly differ.
func gradientFrame(w, h int, phase byte) imaging.Frame {
	f := imaging.Frame{W: w, H: h, C: 3, Pix: make([]byte, w*h*3)}
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Pix[i] = byte(255*x/w) + phase
			f.Pix[i+1] = byte(255 * y / h)
			f.Pix[i+2] = 255 - byte(255*x/w)
			i += 3
		}
	}
	return f
}
