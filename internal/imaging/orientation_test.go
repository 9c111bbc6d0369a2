package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// minimalEXIF builds the smallest JPEG byte prefix carrying an EXIF
// orientation tag with the given value (big-endian TIFF block).
func minimalEXIF(orientation uint16) []byte {
	return []byte{
		0xff, 0xd8, // SOI
		0xff, 0xe1, 0x00, 0x1e, // APP1, size 30
		0x45, 0x78, 0x69, 0x66, 0x00, 0x00, // "Exif\0\0"
		0x4d, 0x4d, // big-endian
		0x00, 0x2a, // TIFF magic
		0x00, 0x00, 0x00, 0x08, // IFD0 offset
		0x00, 0x01, // 1 tag
		0x01, 0x12, // orientation tag
		0x00, 0x03, // type SHORT
		0x00, 0x00, 0x00, 0x01, // count 1
		byte(orientation >> 8), byte(orientation), 0x00, 0x00, // value + pad
	}
}

func TestReadOrientation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Orientation
	}{
		{"rotate 270 tag", minimalEXIF(6), OrientationRotate270},
		{"rotate 90 tag", minimalEXIF(8), OrientationRotate90},
		{"flip horizontal tag", minimalEXIF(2), OrientationFlipH},
		{"normal tag", minimalEXIF(1), OrientationNormal},
		{"invalid tag value", minimalEXIF(9), OrientationUnspecified},
		{"not a jpeg", []byte("\x89PNG\r\n\x1a\n"), OrientationUnspecified},
		{"empty", nil, OrientationUnspecified},
		{"truncated jpeg", []byte{0xff, 0xd8, 0xff}, OrientationUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadOrientation(bytes.NewReader(tt.data))
			if got != tt.want {
				t.Errorf("ReadOrientation: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyOrientation_SwapsDimensions(t *testing.T) {
	img := solidNRGBA(40, 20, color.NRGBA{R: 255, A: 255})

	for _, o := range []Orientation{OrientationRotate90, OrientationRotate270, OrientationTranspose, OrientationTransverse} {
		out := ApplyOrientation(img, o)
		if b := out.Bounds(); b.Dx() != 20 || b.Dy() != 40 {
			t.Errorf("orientation %d: got %dx%d, want 20x40", o, b.Dx(), b.Dy())
		}
	}
}

func TestApplyOrientation_KeepsDimensions(t *testing.T) {
	img := solidNRGBA(40, 20, color.NRGBA{R: 255, A: 255})

	for _, o := range []Orientation{OrientationUnspecified, OrientationNormal, OrientationFlipH, OrientationFlipV, OrientationRotate180} {
		out := ApplyOrientation(img, o)
		if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
			t.Errorf("orientation %d: got %dx%d, want 40x20", o, b.Dx(), b.Dy())
		}
	}
}

func TestApplyOrientation_UnspecifiedReturnsSameImage(t *testing.T) {
	img := solidNRGBA(8, 8, color.NRGBA{A: 255})
	if out := ApplyOrientation(img, OrientationUnspecified); out != image.Image(img) {
		t.Error("unspecified orientation should return the input unchanged")
	}
}

func TestApplyOrientation_FlipH(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})

	out := ApplyOrientation(img, OrientationFlipH)
	c := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA)
	if c.B != 255 || c.R != 0 {
		t.Errorf("flipped pixel: got (%d,%d,%d), want blue at origin", c.R, c.G, c.B)
	}
}
