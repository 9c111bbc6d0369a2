package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// Anchor names one of the five watermark placement positions.
type Anchor string

const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorCenter      Anchor = "center"
)

// Margin is the fixed pixel offset from the nearest canvas edge(s), used by
// every anchor except center.
const Margin = 10

// ParseAnchor validates a position name from the CLI.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorCenter:
		return Anchor(s), nil
	}
	return "", fmt.Errorf("invalid position %q (use top-left, top-right, center, bottom-right or bottom-left)", s)
}

// Known reports whether a is one of the five named anchors.
func (a Anchor) Known() bool {
	_, err := ParseAnchor(string(a))
	return err == nil
}

// ErrZeroWatermark is returned by Composite when the size fraction scales
// the watermark down to zero width. Callers skip the file and continue.
var ErrZeroWatermark = errors.New("computed watermark width is zero")

// ScaledSize returns the watermark target dimensions for a source of the
// given width: width is floor(srcWidth × frac), height scales the overlay's
// own height by the same ratio, preserving its aspect ratio.
func ScaledSize(overlay image.Image, srcWidth int, frac float64) (int, int) {
	w := int(float64(srcWidth) * frac)
	ratio := float64(w) / float64(overlay.Bounds().Dx())
	h := int(float64(overlay.Bounds().Dy()) * ratio)
	return w, h
}

// PlacementPoint returns the top-left insertion coordinate for a resized
// watermark of wmW×wmH on a canvas of imgW×imgH. An unrecognized anchor
// falls back to bottom-right; the second return value is false in that
// case so the caller can log the defensive default. Coordinates may be
// negative or exceed the canvas when the watermark is larger than the
// image; pasting clips them.
func PlacementPoint(a Anchor, imgW, imgH, wmW, wmH int) (image.Point, bool) {
	switch a {
	case AnchorTopLeft:
		return image.Pt(Margin, Margin), true
	case AnchorTopRight:
		return image.Pt(imgW-wmW-Margin, Margin), true
	case AnchorBottomLeft:
		return image.Pt(Margin, imgH-wmH-Margin), true
	case AnchorBottomRight:
		return image.Pt(imgW-wmW-Margin, imgH-wmH-Margin), true
	case AnchorCenter:
		return image.Pt((imgW-wmW)/2, (imgH-wmH)/2), true
	}
	return image.Pt(imgW-wmW-Margin, imgH-wmH-Margin), false
}

// Composite applies the shared overlay to one decoded source image and
// returns the result converted back toward the source's original color
// mode and format constraints.
//
// Steps, in order: scale the overlay to frac of the source width (Lanczos,
// aspect preserved), place it at the anchor, paste it into a transparent
// layer the size of the source (clipping out-of-canvas pixels), alpha-
// composite the layer over the source, then restore mode/format fidelity.
//
// Returns ErrZeroWatermark when floor(srcWidth × frac) is 0.
func Composite(src *SourceImage, overlay *image.NRGBA, frac float64, anchor Anchor) (image.Image, error) {
	bounds := src.Image.Bounds()
	wmW, wmH := ScaledSize(overlay, bounds.Dx(), frac)
	if wmW == 0 {
		return nil, ErrZeroWatermark
	}
	if wmH == 0 {
		wmH = 1
	}

	resized := transform.Resize(overlay, wmW, wmH, transform.Lanczos)
	pos, _ := PlacementPoint(anchor, bounds.Dx(), bounds.Dy(), wmW, wmH)

	base := imaging.Clone(src.Image)
	layer := imaging.Paste(image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy())), resized, pos)
	composited := imaging.Overlay(base, layer, image.Pt(0, 0), 1.0)

	return RestoreMode(composited, src), nil
}
