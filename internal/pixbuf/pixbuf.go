// Package pixbuf holds decoded image data as a flat 3D byte buffer indexed
// by (row, column, channel). The image codecs that produce and consume it
// live at the boundary; nothing here knows about PNG or JPEG framing.
package pixbuf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/faanross/pixelcipher/internal/spec"
)

var (
	// ErrShape reports dimensions that do not describe a valid buffer.
	ErrShape = errors.New("invalid buffer shape")
	// ErrDomain reports a pixel value outside 0-255.
	ErrDomain = errors.New("pixel value outside 0-255")
)

// Buffer is a decoded image, row-major. Elements are bytes, so every stored
// sample is in [0,255] by construction.
type Buffer struct {
	height   int
	width    int
	channels int
	pix      []byte
}

// New allocates a zeroed buffer. Degenerate dimensions (0 rows or columns)
// are legal; negative dimensions or a channel count below 1 are not. The
// dimension product is bounded before allocation, so a shape that lies
// about its storage (or overflows int) is rejected, never constructed.
func New(height, width, channels int) (*Buffer, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, height, width)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrShape, channels)
	}
	// Divide against the cap instead of multiplying the dimensions:
	// every accepted product is <= MAX_BUFFER_BYTES and cannot wrap.
	if width > 0 && channels > spec.MAX_BUFFER_BYTES/width {
		return nil, fmt.Errorf("%w: %dx%dx%d exceeds %d bytes",
			ErrShape, height, width, channels, spec.MAX_BUFFER_BYTES)
	}
	rowBytes := width * channels
	if rowBytes > 0 && height > spec.MAX_BUFFER_BYTES/rowBytes {
		return nil, fmt.Errorf("%w: %dx%dx%d exceeds %d bytes",
			ErrShape, height, width, channels, spec.MAX_BUFFER_BYTES)
	}
	return &Buffer{
		height:   height,
		width:    width,
		channels: channels,
		pix:      make([]byte, height*rowBytes),
	}, nil
}

// FromInts builds a buffer from untrusted integer samples, enforcing the
// 0-255 domain. vals is row-major (row, column, channel).
func FromInts(height, width, channels int, vals []int) (*Buffer, error) {
	b, err := New(height, width, channels)
	if err != nil {
		return nil, err
	}
	if len(vals) != len(b.pix) {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d",
			ErrShape, len(vals), height, width, channels)
	}
	for i, v := range vals {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: value %d at offset %d", ErrDomain, v, i)
		}
		b.pix[i] = byte(v)
	}
	return b, nil
}

// Shape returns (height, width, channels).
func (b *Buffer) Shape() (int, int, int) { return b.height, b.width, b.channels }

func (b *Buffer) Height() int   { return b.height }
func (b *Buffer) Width() int    { return b.width }
func (b *Buffer) Channels() int { return b.channels }

// Len returns the total sample count.
func (b *Buffer) Len() int { return len(b.pix) }

// At returns the sample at (row, col, channel). Indices must be in range.
func (b *Buffer) At(row, col, ch int) byte {
	return b.pix[(row*b.width+col)*b.channels+ch]
}

// Set stores a sample at (row, col, channel).
func (b *Buffer) Set(row, col, ch int, v byte) {
	b.pix[(row*b.width+col)*b.channels+ch] = v
}

// Bytes exposes the flat backing array. Callers must not reshape it.
func (b *Buffer) Bytes() []byte { return b.pix }

// Clone returns a deep copy with the identical shape.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{height: b.height, width: b.width, channels: b.channels}
	c.pix = make([]byte, len(b.pix))
	copy(c.pix, b.pix)
	return c
}

// SameShape reports whether two buffers agree on all three dimensions.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.height == o.height && b.width == o.width && b.channels == o.channels
}

// Equal reports element-wise equality, shape included.
func (b *Buffer) Equal(o *Buffer) bool {
	if o == nil || !b.SameShape(o) {
		return false
	}
	return bytes.Equal(b.pix, o.pix)
}
