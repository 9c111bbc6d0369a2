package imaging

import (
	"encoding/binary"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Orientation is the EXIF orientation flag describing the transform needed
// to display an image correctly.
type Orientation int

const (
	OrientationUnspecified Orientation = 0
	OrientationNormal      Orientation = 1
	OrientationFlipH       Orientation = 2
	OrientationRotate180   Orientation = 3
	OrientationFlipV       Orientation = 4
	OrientationTranspose   Orientation = 5
	OrientationRotate270   Orientation = 6
	OrientationTransverse  Orientation = 7
	OrientationRotate90    Orientation = 8
)

// ReadOrientation scans the stream for a JPEG EXIF orientation tag.
// Non-JPEG data, a missing EXIF block, a missing orientation tag, or any
// read error all yield OrientationUnspecified, meaning no transform.
func ReadOrientation(r io.Reader) Orientation {
	const (
		markerSOI      = 0xffd8
		markerAPP1     = 0xffe1
		exifHeader     = 0x45786966
		byteOrderBE    = 0x4d4d
		byteOrderLE    = 0x4949
		orientationTag = 0x0112
	)

	var soi uint16
	if err := binary.Read(r, binary.BigEndian, &soi); err != nil || soi != markerSOI {
		return OrientationUnspecified
	}

	// Scan segment markers until APP1.
	for {
		var marker, size uint16
		if err := binary.Read(r, binary.BigEndian, &marker); err != nil {
			return OrientationUnspecified
		}
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return OrientationUnspecified
		}
		if marker>>8 != 0xff {
			return OrientationUnspecified
		}
		if marker == markerAPP1 {
			break
		}
		if size < 2 {
			return OrientationUnspecified
		}
		if _, err := io.CopyN(io.Discard, r, int64(size-2)); err != nil {
			return OrientationUnspecified
		}
	}

	var header uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil || header != exifHeader {
		return OrientationUnspecified
	}
	if _, err := io.CopyN(io.Discard, r, 2); err != nil {
		return OrientationUnspecified
	}

	var byteOrderTag uint16
	var byteOrder binary.ByteOrder
	if err := binary.Read(r, binary.BigEndian, &byteOrderTag); err != nil {
		return OrientationUnspecified
	}
	switch byteOrderTag {
	case byteOrderBE:
		byteOrder = binary.BigEndian
	case byteOrderLE:
		byteOrder = binary.LittleEndian
	default:
		return OrientationUnspecified
	}
	if _, err := io.CopyN(io.Discard, r, 2); err != nil {
		return OrientationUnspecified
	}

	var offset uint32
	if err := binary.Read(r, byteOrder, &offset); err != nil || offset < 8 {
		return OrientationUnspecified
	}
	if _, err := io.CopyN(io.Discard, r, int64(offset-8)); err != nil {
		return OrientationUnspecified
	}

	var numTags uint16
	if err := binary.Read(r, byteOrder, &numTags); err != nil {
		return OrientationUnspecified
	}

	for i := 0; i < int(numTags); i++ {
		var tag uint16
		if err := binary.Read(r, byteOrder, &tag); err != nil {
			return OrientationUnspecified
		}
		if tag != orientationTag {
			if _, err := io.CopyN(io.Discard, r, 10); err != nil {
				return OrientationUnspecified
			}
			continue
		}
		if _, err := io.CopyN(io.Discard, r, 6); err != nil {
			return OrientationUnspecified
		}
		var val uint16
		if err := binary.Read(r, byteOrder, &val); err != nil {
			return OrientationUnspecified
		}
		if val < 1 || val > 8 {
			return OrientationUnspecified
		}
		return Orientation(val)
	}
	return OrientationUnspecified
}

// ApplyOrientation transforms img so its pixel dimensions match its display
// orientation. OrientationUnspecified and OrientationNormal return img
// unchanged.
func ApplyOrientation(img image.Image, o Orientation) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	}
	return img
}
