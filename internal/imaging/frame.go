// Package imaging defines the minimal pixel-buffer contract consumed by the
// document encoders: a row-major byte buffer with known width, height and
// channel count. Real image types are adapted to it at the boundary so the
// rest of the library never depends on a particular imaging library.
package imaging

import (
	"image"
	"image/color"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
)

// Frame is a row-major pixel buffer. Pix holds W*H*C bytes, rows first,
// channels interleaved. Supported channel counts are 1 (gray), 3 (RGB)
// and 4 (RGBA).
type Frame struct {
	W, H, C int
	Pix     []byte
}

// Validate checks the frame shape against the contract.
func (f Frame) Validate() error {
	if f.W <= 0 || f.H <= 0 {
		return errors.Encoding("image has zero or negative dimensions (%dx%d)", f.W, f.H)
	}
	switch f.C {
	case 1, 3, 4:
	default:
		return errors.Encoding("unsupported channel count %d (want 1, 3 or 4)", f.C)
	}
	if len(f.Pix) != f.W*f.H*f.C {
		return errors.Encoding("pixel buffer length %d does not match %dx%dx%d",
			len(f.Pix), f.W, f.H, f.C)
	}
	return nil
}

// BGR returns a copy of the frame with the first three channels of every
// pixel reversed. For 4-channel frames the alpha channel is left in place.
// Single-channel frames are returned unchanged (still copied).
func (f Frame) BGR() Frame {
	out := Frame{W: f.W, H: f.H, C: f.C, Pix: make([]byte, len(f.Pix))}
	copy(out.Pix, f.Pix)
	if f.C < 3 {
		return out
	}
	for i := 0; i+f.C <= len(out.Pix); i += f.C {
		out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
	}
	return out
}

// SameSize reports whether two frames share identical dimensions and
// channel count.
func (f Frame) SameSize(other Frame) bool {
	return f.W == other.W && f.H == other.H && f.C == other.C
}

// FromImage adapts a decoded image.Image into an RGBA Frame.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	f := Frame{W: b.Dx(), H: b.Dy(), C: 4, Pix: make([]byte, b.Dx()*b.Dy()*4)}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			f.Pix[i] = c.R
			f.Pix[i+1] = c.G
			f.Pix[i+2] = c.B
			f.Pix[i+3] = c.A
			i += 4
		}
	}
	return f
}

// ToImage converts the frame into a stdlib image for encoding.
// The frame must validate first.
func (f Frame) ToImage() image.Image {
	switch f.C {
	case 1:
		img := image.NewGray(image.Rect(0, 0, f.W, f.H))
		copy(img.Pix, f.Pix)
		return img
	case 4:
		img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
		copy(img.Pix, f.Pix)
		return img
	default: // 3
		img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
		src := 0
		for dst := 0; dst < len(img.Pix); dst += 4 {
			img.Pix[dst] = f.Pix[src]
			img.Pix[dst+1] = f.Pix[src+1]
			img.Pix[dst+2] = f.Pix[src+2]
			img.Pix[dst+3] = 0xFF
			src += 3
		}
		return img
	}
}

// ValidateSequence checks a video frame sequence: every frame must validate
// individually and all frames must share the dimensions of the first.
func ValidateSequence(frames []Frame) error {
	if len(frames) == 0 {
		return errors.Encoding("video requires a non-empty frame sequence")
	}
	for i, fr := range frames {
		if err := fr.Validate(); err != nil {
			return errors.Wrap(err, errors.CategoryEncoding,
				"invalid video frame").WithContext("frame", i)
		}
		if !fr.SameSize(frames[0]) {
			return errors.Structure(
				"video frame %d is %dx%dx%d, frame 0 is %dx%dx%d",
				i, fr.W, fr.H, fr.C, frames[0].W, frames[0].H, frames[0].C)
		}
	}
	return nil
}
