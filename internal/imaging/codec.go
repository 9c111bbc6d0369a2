package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Register decoders for every format the walker admits. BMP and TIFF
	// are also registered by the imaging library; WebP decode comes from
	// x/image and has no encoder there (see EncodeTo).
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format identifies the container format of a source image. It is derived
// from what the decoder actually recognized, not from the file extension,
// and determines the encoder used for the mirrored output file.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWEBP Format = "webp"
)

// FormatFromName maps an image.Decode format name to a Format.
func FormatFromName(name string) (Format, error) {
	switch name {
	case "jpeg", "png", "gif", "bmp", "tiff", "webp":
		return Format(name), nil
	}
	return "", fmt.Errorf("unsupported image format %q", name)
}

// SupportsAlpha reports whether the format can encode an alpha channel.
// WebP is conservatively treated as non-alpha: all WebP output is flattened
// to an opaque image regardless of the source file's own alpha support.
func (f Format) SupportsAlpha() bool {
	switch f {
	case FormatPNG, FormatGIF, FormatTIFF:
		return true
	}
	return false
}

// Mode is the color mode of a source image, captured before compositing so
// the output can be converted back after the watermark is applied.
type Mode string

const (
	ModeGray     Mode = "gray"     // single-channel grayscale
	ModePaletted Mode = "paletted" // indexed color (GIF, paletted PNG)
	ModeRGB      Mode = "rgb"      // opaque truecolor
	ModeRGBA     Mode = "rgba"     // truecolor with alpha
)

// ModeOf classifies the decoded image by its concrete Go type.
//
// Go decoders model opaque truecolor images as *image.RGBA or *image.YCbCr;
// both classify as ModeRGB so restoration flattens them and the encoder
// emits a channel layout matching the source. *image.NRGBA counts as
// ModeRGBA even when every pixel is opaque, since the source file carried
// an alpha channel.
func ModeOf(img image.Image) Mode {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.Paletted:
		return ModePaletted
	case *image.NRGBA, *image.NRGBA64, *image.RGBA64:
		return ModeRGBA
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	default:
		return ModeRGB
	}
}

// SourceImage is a decoded source file together with the metadata needed to
// reproduce its format and color mode on output. Image has already been
// EXIF-orientation normalized, so its bounds reflect display orientation.
type SourceImage struct {
	Image   image.Image
	Mode    Mode
	Format  Format
	Palette color.Palette // original palette when Mode is ModePaletted
}

// DecodeSource reads and decodes one source image. The file is read in a
// single pass; mode and format are captured from the decoder before the
// orientation transform (which rewrites the pixel representation).
func DecodeSource(path string) (*SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}

	src := &SourceImage{
		Mode:   ModeOf(img),
		Format: format,
	}
	if p, ok := img.(*image.Paletted); ok {
		src.Palette = p.Palette
	}

	src.Image = ApplyOrientation(img, ReadOrientation(bytes.NewReader(data)))
	return src, nil
}

// RestoreMode converts a composited NRGBA image back toward the source's
// original representation. Formats that cannot carry alpha are flattened to
// an opaque image; otherwise the original mode is reinstated, accepting the
// fidelity loss inherent to low-color-depth modes.
func RestoreMode(img *image.NRGBA, src *SourceImage) image.Image {
	if !src.Format.SupportsAlpha() {
		return flattenOpaque(img)
	}

	switch src.Mode {
	case ModeGray:
		gray := image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
		return gray
	case ModePaletted:
		palette := src.Palette
		if palette == nil {
			palette = color.Palette{color.Black, color.White}
		}
		p := image.NewPaletted(img.Bounds(), palette)
		draw.FloydSteinberg.Draw(p, p.Bounds(), img, img.Bounds().Min)
		return p
	case ModeRGB:
		return flattenOpaque(img)
	default:
		return img
	}
}

// flattenOpaque forces every alpha sample to full opacity. Color channels
// are left as composited; the PNG encoder detects the opaque image and
// omits the alpha channel, and the JPEG/BMP/WebP encoders never carry one.
func flattenOpaque(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// jpegQuality matches the quality commonly used for photographic output in
// the imaging ecosystem.
const jpegQuality = 95

// EncodeTo writes img to w in the given container format.
func EncodeTo(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatGIF:
		return imaging.Encode(w, img, imaging.GIF)
	case FormatBMP:
		return imaging.Encode(w, img, imaging.BMP)
	case FormatTIFF:
		return imaging.Encode(w, img, imaging.TIFF)
	case FormatWEBP:
		return webp.Encode(w, img, &webp.Options{Quality: 90})
	}
	return fmt.Errorf("unsupported image format %q", format)
}
