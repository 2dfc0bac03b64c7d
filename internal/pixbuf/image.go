package pixbuf

import (
	"fmt"
	"image"
	"image/color"

	"github.com/faanross/pixelcipher/internal/spec"
)

// FromImage flattens a decoded image into a 3-channel RGB buffer,
// discarding alpha.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b, _ := New(bounds.Dy(), bounds.Dx(), spec.CHANNELS_RGB)

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			b.Set(y, x, 0, uint8(r>>8))
			b.Set(y, x, 1, uint8(g>>8))
			b.Set(y, x, 2, uint8(bl>>8))
		}
	}
	return b
}

// FromImageRGBA flattens a decoded image into a 4-channel buffer, alpha kept.
func FromImageRGBA(img image.Image) *Buffer {
	bounds := img.Bounds()
	b, _ := New(bounds.Dy(), bounds.Dx(), spec.CHANNELS_RGBA)

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r, g, bl, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			b.Set(y, x, 0, uint8(r>>8))
			b.Set(y, x, 1, uint8(g>>8))
			b.Set(y, x, 2, uint8(bl>>8))
			b.Set(y, x, 3, uint8(a>>8))
		}
	}
	return b
}

// FromImageGray flattens a decoded image into a single-channel buffer.
func FromImageGray(img image.Image) *Buffer {
	bounds := img.Bounds()
	b, _ := New(bounds.Dy(), bounds.Dx(), spec.CHANNELS_GRAY)

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			b.Set(y, x, 0, g.Y)
		}
	}
	return b
}

// Image renders the buffer back to a stdlib image. The concrete type
// follows the channel count: Gray for 1, RGBA with opaque alpha for 3,
// NRGBA for 4. Other channel counts have no image form.
func (b *Buffer) Image() (image.Image, error) {
	switch b.channels {
	case spec.CHANNELS_GRAY:
		img := image.NewGray(image.Rect(0, 0, b.width, b.height))
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				img.SetGray(x, y, color.Gray{Y: b.At(y, x, 0)})
			}
		}
		return img, nil
	case spec.CHANNELS_RGB:
		img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				img.SetRGBA(x, y, color.RGBA{
					R: b.At(y, x, 0),
					G: b.At(y, x, 1),
					B: b.At(y, x, 2),
					A: 255,
				})
			}
		}
		return img, nil
	case spec.CHANNELS_RGBA:
		img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				img.SetNRGBA(x, y, color.NRGBA{
					R: b.At(y, x, 0),
					G: b.At(y, x, 1),
					B: b.At(y, x, 2),
					A: b.At(y, x, 3),
				})
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: no image form for %d channels", ErrShape, b.channels)
	}
}
