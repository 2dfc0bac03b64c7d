// Package codec applies a substitution key element-wise over pixel buffers.
// The transform is pure and order-independent: every (row, column, channel)
// sample is mapped through the table on its own, so the buffer can be
// partitioned across workers with no coordination beyond the final join.
package codec

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/spec"
	"golang.org/x/sync/errgroup"
)

// ErrKeyMismatch reports a decode against a table with no usable inverse:
// the key does not match the data, or the table is corrupt.
var ErrKeyMismatch = errors.New("no inverse entry: wrong key or corrupted data")

// Codec runs the substitution with a bounded number of worker goroutines.
type Codec struct {
	workers int
}

// New returns a codec using at most workers goroutines per call.
// workers < 1 selects GOMAXPROCS.
func New(workers int) *Codec {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Codec{workers: workers}
}

// Encode returns a new buffer of identical shape where every sample v is
// replaced by key[v]. The input buffer is never modified.
func (c *Codec) Encode(ctx context.Context, buf *pixbuf.Buffer, key *permutation.Permutation) (*pixbuf.Buffer, error) {
	table := key.Table()
	return c.apply(ctx, buf, &table)
}

// Decode reverses Encode using the inverse derived from key.
func (c *Codec) Decode(ctx context.Context, buf *pixbuf.Buffer, key *permutation.Permutation) (*pixbuf.Buffer, error) {
	inv, err := key.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMismatch, err)
	}
	return c.apply(ctx, buf, inv)
}

// apply substitutes every sample through table. Both directions run this
// same kernel with different tables, so round-trip correctness does not
// depend on which path is taken.
func (c *Codec) apply(ctx context.Context, buf *pixbuf.Buffer, table *[spec.DOMAIN_SIZE]byte) (*pixbuf.Buffer, error) {
	height, width, channels := buf.Shape()
	out, err := pixbuf.New(height, width, channels)
	if err != nil {
		return nil, err
	}

	src := buf.Bytes()
	dst := out.Bytes()

	if c.workers == 1 || height < spec.MIN_PARALLEL_ROWS {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		substitute(dst, src, table)
		return out, nil
	}

	rowBytes := width * channels
	rowsPer := (height + c.workers - 1) / c.workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < height; start += rowsPer {
		end := start + rowsPer
		if end > height {
			end = height
		}
		lo, hi := start*rowBytes, end*rowBytes
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			substitute(dst[lo:hi], src[lo:hi], table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func substitute(dst, src []byte, table *[spec.DOMAIN_SIZE]byte) {
	for i, v := range src {
		dst[i] = table[v]
	}
}
