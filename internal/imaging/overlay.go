package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadOverlay reads the watermark image at path and returns it as an NRGBA
// overlay whose alpha channel has been scaled by opacity.
//
// Parameters:
//   - path: Path to the watermark image file. Any decodable format is
//     accepted; images without an alpha channel get a fully opaque one
//     before scaling.
//   - opacity: Alpha multiplier in [0, 1]. 0 yields a fully transparent
//     overlay, 1 leaves the original alpha unchanged.
//
// Returns:
//   - *image.NRGBA: The opacity-adjusted overlay. It is loaded once per run
//     and shared read-only across all per-image operations.
//   - error: Non-nil if opacity is out of range or the file cannot be
//     opened or decoded. Overlay failures are fatal to the run.
func LoadOverlay(path string, opacity float64) (*image.NRGBA, error) {
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("opacity %g out of range [0, 1]", opacity)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load watermark %q: %w", path, err)
	}

	// Clone always yields non-premultiplied RGBA, so scaling the alpha
	// samples alone is a correct opacity adjustment.
	overlay := imaging.Clone(img)
	for i := 3; i < len(overlay.Pix); i += 4 {
		overlay.Pix[i] = uint8(float64(overlay.Pix[i])*opacity + 0.5)
	}
	return overlay, nil
}
