package classifier

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultImageSize is the square input edge the model was trained on.
	DefaultImageSize = 224
	// DefaultMaxPixels bounds the decoded size of an upload.
	DefaultMaxPixels = 50_000_000
)

// Tensor is one model input: rows of pixels, each an RGB triple scaled to [0,1].
type Tensor [][][3]float32

// Size returns the tensor's edge length.
func (t Tensor) Size() int {
	return len(t)
}

// Decode reads a JPEG, PNG, GIF, or WebP image and applies its EXIF orientation.
// The header is checked first: images whose declared width×height exceeds
// maxPixels are rejected before any pixel data is decoded. A non-positive
// maxPixels uses DefaultMaxPixels.
func Decode(r io.Reader, maxPixels int) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrDecodeImage, cfg.Width, cfg.Height)
	}
	if cfg.Width > maxPixels/cfg.Height {
		return nil, fmt.Errorf("%w: %w: %dx%d exceeds %d pixels",
			ErrDecodeImage, ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}
	return Orient(img, Orientation(data)), nil
}

// ToTensor resizes img to size×size with nearest-neighbour sampling, drops alpha,
// and divides each channel by 255.
func ToTensor(img image.Image, size int) Tensor {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	t := make(Tensor, size)
	for y := range size {
		row := make([][3]float32, size)
		for x := range size {
			i := dst.PixOffset(x, y)
			row[x] = [3]float32{
				float32(dst.Pix[i]) / 255,
				float32(dst.Pix[i+1]) / 255,
				float32(dst.Pix[i+2]) / 255,
			}
		}
		t[y] = row
	}
	return t
}
