package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faanross/pixelcipher/internal/keygen"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuffer(t *testing.T) *pixbuf.Buffer {
	t.Helper()
	buf, err := pixbuf.New(8, 6, 3)
	require.NoError(t, err)
	for i := range buf.Bytes() {
		buf.Bytes()[i] = byte(i * 13)
	}
	return buf
}

func TestSaveLoadKey(t *testing.T) {
	key := keygen.NewSeededGenerator(11).Generate()
	path := filepath.Join(t.TempDir(), "key.txt")

	require.NoError(t, SaveKey(path, key))

	got, err := LoadKey(path)
	require.NoError(t, err)
	assert.True(t, key.Equal(got))
}

func TestSaveLoadBufferPlain(t *testing.T) {
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "table.csv")

	require.NoError(t, SaveBuffer(path, buf, false))

	got, err := LoadBuffer(path)
	require.NoError(t, err)
	assert.True(t, buf.Equal(got))
}

func TestSaveLoadBufferCompressed(t *testing.T) {
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "table.csv.gz")

	require.NoError(t, SaveBuffer(path, buf, true))

	// The artifact must actually be gzip on disk
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	assert.Equal(t, byte(spec.GZIP_MAGIC_0), raw[0])
	assert.Equal(t, byte(spec.GZIP_MAGIC_1), raw[1])

	// LoadBuffer sniffs and unwraps without being told
	got, err := LoadBuffer(path)
	require.NoError(t, err)
	assert.True(t, buf.Equal(got))
}

func TestLoadBufferMissingFile(t *testing.T) {
	_, err := LoadBuffer(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestLoadKeyCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")
	require.NoError(t, os.WriteFile(path, []byte("0, 1, junk"), 0o644))

	_, err := LoadKey(path)
	require.ErrorIs(t, err, ErrParse)
}
