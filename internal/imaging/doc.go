// Package imaging implements the image-processing core of watermark-tree:
// loading the opacity-adjusted watermark overlay, decoding source images
// with their container format and color mode preserved, EXIF orientation
// normalization, and the per-image compositing routine.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner;
// X increases rightward and Y increases downward. Placement points name the
// top-left corner of the pasted watermark.
//
// # Color Handling
//
// Compositing happens in non-premultiplied RGBA (image.NRGBA) so the
// watermark's alpha channel can be scaled independently of its color
// channels. After compositing, the result is converted back toward the
// source's original color mode; container formats without alpha support
// (JPEG, BMP, WebP) are flattened to an opaque image first.
//
// # Thread Safety
//
// The overlay returned by LoadOverlay is treated as read-only for the whole
// run and is safe to share. All other operations are stateless.
package imaging
