package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
)

// Encoding names an on-disk image format for still images.
type Encoding string

const (
	EncodingPNG  Encoding = "png"
	EncodingJPEG Encoding = "jpg"
)

// Ext returns the file extension (without dot) for the encoding.
func (e Encoding) Ext() string { return string(e) }

// MIME returns the media type used in data URIs for the encoding.
func (e Encoding) MIME() string {
	if e == EncodingJPEG {
		return "image/jpeg"
	}
	return fmt.Sprintf("image/%s", e)
}

// Encode serializes a frame in the given encoding and returns the raw bytes.
func Encode(f Frame, enc Encoding) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var err error
	switch enc {
	case EncodingPNG:
		err = png.Encode(&buf, f.ToImage())
	case EncodingJPEG:
		err = jpeg.Encode(&buf, f.ToImage(), nil)
	default:
		return nil, errors.Encoding("unsupported image encoding %q", enc)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryEncoding, "encode image")
	}
	return buf.Bytes(), nil
}

// EncodeGIF serializes a frame sequence as an animated GIF at the given
// frame rate. The sequence must already have passed ValidateSequence.
//
// GIF delays have centisecond granularity, so very high rates collapse to
// the fastest representable delay.
func EncodeGIF(frames []Frame, fps float64) ([]byte, error) {
	if fps <= 0 {
		return nil, errors.Encoding("video fps must be positive, got %g", fps)
	}
	if err := ValidateSequence(frames); err != nil {
		return nil, err
	}
	delay := int(100/fps + 0.5)
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{LoopCount: 0}
	rect := image.Rect(0, 0, frames[0].W, frames[0].H)
	for _, fr := range frames {
		pal := image.NewPaletted(rect, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, rect, fr.ToImage(), image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	var out bytes.Buffer
	if err := gif.EncodeAll(&out, anim); err != nil {
		return nil, errors.Wrap(err, errors.CategoryEncoding, "encode video")
	}
	return out.Bytes(), nil
}

// DataURI renders encoded image bytes as an inline data URI.
func DataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
