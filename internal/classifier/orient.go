package classifier

import (
	"bytes"
	"image"
	"image/color"

	"github.com/bep/imagemeta"
)

// Orientation returns the EXIF orientation (1-8) recorded in an encoded image.
// Images without readable EXIF report 1.
func Orientation(data []byte) int {
	orientation := 1

	imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "Orientation"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if v, ok := tagInt(ti.Value); ok && v >= 1 && v <= 8 {
				orientation = v
			}
			return nil
		},
	})

	return orientation
}

// Orient returns img as it should be displayed for the given EXIF orientation.
func Orient(img image.Image, orientation int) image.Image {
	if orientation <= 1 || orientation > 8 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if orientation >= 5 {
		dw, dh = h, w
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := range dh {
		for x := range dw {
			sx, sy := source(orientation, x, y, w, h)
			dst.Set(x, y, color.RGBAModel.Convert(img.At(b.Min.X+sx, b.Min.Y+sy)))
		}
	}
	return dst
}

// source maps a destination pixel back to the stored pixel for an orientation.
func source(orientation, x, y, w, h int) (int, int) {
	switch orientation {
	case 2:
		return w - 1 - x, y
	case 3:
		return w - 1 - x, h - 1 - y
	case 4:
		return x, h - 1 - y
	case 5:
		return y, x
	case 6:
		return y, h - 1 - x
	case 7:
		return w - 1 - y, h - 1 - x
	case 8:
		return w - 1 - y, x
	default:
		return x, y
	}
}

func tagInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case []any:
		if len(n) == 1 {
			return tagInt(n[0])
		}
	}
	return 0, false
}
