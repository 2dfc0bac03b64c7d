package tabular

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"

	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/spec"
)

// SaveKey writes the key artifact, creating or truncating path.
func SaveKey(path string, p *permutation.Permutation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer f.Close()

	if err := WriteKey(f, p); err != nil {
		return err
	}
	return f.Close()
}

// LoadKey reads and validates a key artifact.
func LoadKey(path string) (*permutation.Permutation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening key file: %w", err)
	}
	defer f.Close()

	return ReadKey(f)
}

// SaveBuffer writes the table artifact. With compress set the grid is
// gzip-wrapped; LoadBuffer detects and unwraps this transparently.
func SaveBuffer(path string, buf *pixbuf.Buffer, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}
	defer f.Close()

	if compress {
		zw := gzip.NewWriter(f)
		if err := WriteBuffer(zw, buf); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("closing gzip stream: %w", err)
		}
	} else if err := WriteBuffer(f, buf); err != nil {
		return err
	}
	return f.Close()
}

// LoadBuffer reads a table artifact, sniffing the gzip magic to decide
// whether the grid is compressed.
func LoadBuffer(path string) (*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == spec.GZIP_MAGIC_0 && magic[1] == spec.GZIP_MAGIC_1 {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", ErrParse, err)
		}
		defer zr.Close()
		return ReadBuffer(zr)
	}
	return ReadBuffer(br)
}
