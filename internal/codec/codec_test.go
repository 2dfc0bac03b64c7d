package codec

import (
	"context"
	"testing"

	"github.com/faanross/pixelcipher/internal/keygen"
	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func reversalKey(t testing.TB) *permutation.Permutation {
	seq := make([]int, spec.DOMAIN_SIZE)
	for i := range seq {
		seq[i] = 255 - i
	}
	p, err := permutation.FromSequence(seq)
	require.NoError(t, err)
	return p
}

func TestEncodeReversalExample(t *testing.T) {
	// 1x1 pixel [10,20,30] under the full-reversal key
	buf, err := pixbuf.FromInts(1, 1, 3, []int{10, 20, 30})
	require.NoError(t, err)

	c := New(1)
	enc, err := c.Encode(context.Background(), buf, reversalKey(t))
	require.NoError(t, err)

	assert.Equal(t, byte(245), enc.At(0, 0, 0))
	assert.Equal(t, byte(235), enc.At(0, 0, 1))
	assert.Equal(t, byte(225), enc.At(0, 0, 2))

	dec, err := c.Decode(context.Background(), enc, reversalKey(t))
	require.NoError(t, err)
	assert.True(t, buf.Equal(dec))
}

func TestEncodeLeavesInputUntouched(t *testing.T) {
	buf, err := pixbuf.FromInts(1, 1, 3, []int{10, 20, 30})
	require.NoError(t, err)
	orig := buf.Clone()

	_, err = New(1).Encode(context.Background(), buf, reversalKey(t))
	require.NoError(t, err)
	assert.True(t, orig.Equal(buf))
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		height := rapid.IntRange(0, 20).Draw(t, "height")
		width := rapid.IntRange(0, 20).Draw(t, "width")
		channels := rapid.SampledFrom([]int{1, 3, 4}).Draw(t, "channels")
		seed := rapid.Int64().Draw(t, "seed")
		workers := rapid.IntRange(1, 8).Draw(t, "workers")

		buf, err := pixbuf.New(height, width, channels)
		require.NoError(t, err)
		pix := rapid.SliceOfN(rapid.Byte(), buf.Len(), buf.Len()).Draw(t, "pix")
		copy(buf.Bytes(), pix)

		key := keygen.NewSeededGenerator(seed).Generate()
		c := New(workers)

		enc, err := c.Encode(context.Background(), buf, key)
		require.NoError(t, err)
		require.True(t, buf.SameShape(enc))

		dec, err := c.Decode(context.Background(), enc, key)
		require.NoError(t, err)
		require.True(t, buf.Equal(dec))
	})
}

func TestSequentialAndParallelAgree(t *testing.T) {
	// Tall enough to cross the parallel threshold
	buf, err := pixbuf.New(128, 16, 3)
	require.NoError(t, err)
	for i := range buf.Bytes() {
		buf.Bytes()[i] = byte(i * 31)
	}
	key := keygen.NewSeededGenerator(99).Generate()

	seq, err := New(1).Encode(context.Background(), buf, key)
	require.NoError(t, err)
	par, err := New(8).Encode(context.Background(), buf, key)
	require.NoError(t, err)

	assert.True(t, seq.Equal(par))
}

func TestShapePreserved(t *testing.T) {
	key := keygen.NewSeededGenerator(3).Generate()
	c := New(2)

	for _, dims := range [][3]int{{0, 0, 3}, {1, 1, 1}, {5, 9, 4}, {200, 3, 3}} {
		buf, err := pixbuf.New(dims[0], dims[1], dims[2])
		require.NoError(t, err)

		enc, err := c.Encode(context.Background(), buf, key)
		require.NoError(t, err)
		assert.True(t, buf.SameShape(enc), "dims %v", dims)
	}
}

func TestDecodeRejectsCorruptTable(t *testing.T) {
	buf, err := pixbuf.New(1, 1, 3)
	require.NoError(t, err)

	var corrupt permutation.Permutation // zero value, not a bijection
	_, err = New(1).Decode(context.Background(), buf, &corrupt)
	require.ErrorIs(t, err, ErrKeyMismatch)
}

func TestCancelledContext(t *testing.T) {
	buf, err := pixbuf.New(512, 64, 3)
	require.NoError(t, err)
	key := keygen.NewSeededGenerator(5).Generate()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(4).Encode(ctx, buf, key)
	require.ErrorIs(t, err, context.Canceled)

	_, err = New(1).Encode(ctx, buf, key)
	require.ErrorIs(t, err, context.Canceled)
}
