// Package plot defines the narrow contract between documents and a plotting
// collaborator: something that can hand over the currently active figure as
// a pixel buffer. The library never talks to a real plotting backend; callers
// adapt theirs to FigureSource at the boundary.
package plot

import (
	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
)

// FigureSource yields the currently active figure as a rendered bitmap.
type FigureSource interface {
	// CurrentFigure returns the active figure's pixels, or an encoding
	// error when no figure is active.
	CurrentFigure() (imaging.Frame, error)
}

// Static is a FigureSource backed by a fixed frame, used in tests and by
// adapters that render eagerly.
type Static struct {
	Frame  imaging.Frame
	Active bool
}

// CurrentFigure returns the held frame while Active is set.
func (s *Static) CurrentFigure() (imaging.Frame, error) {
	if !s.Active {
		return imaging.Frame{}, errors.Encoding("no active figure")
	}
	return s.Frame, nil
}
