// Package tabular persists keys and pixel buffers as plain text artifacts.
//
// The key artifact is a single line of 256 comma-separated integers,
// position i holding the image of source byte i. The table artifact starts
// with a height,width,channels header line followed by one line per pixel
// holding its channel values, row-major. ReadBuffer is the exact inverse of
// WriteBuffer, and ReadKey of WriteKey.
package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/spec"
)

// ErrParse reports text that does not lex as the expected integer grid.
var ErrParse = errors.New("malformed table text")

// WriteKey emits the full substitution table as one comma-separated line.
func WriteKey(w io.Writer, p *permutation.Permutation) error {
	seq := p.Sequence()
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, ", ")); err != nil {
		return fmt.Errorf("writing key: %w", err)
	}
	return nil
}

// ReadKey parses a key artifact back into a validated Permutation. Entries
// may be separated by commas, spaces or newlines. A non-integer token is
// ErrParse; a well-formed integer list that is not a bijection on {0..255}
// is permutation.ErrInvalidPermutation. Input beyond MAX_KEY_BYTES is
// rejected without being read in.
func ReadKey(r io.Reader) (*permutation.Permutation, error) {
	data, err := io.ReadAll(io.LimitReader(r, spec.MAX_KEY_BYTES+1))
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}
	if len(data) > spec.MAX_KEY_BYTES {
		return nil, fmt.Errorf("%w: key artifact larger than %d bytes", ErrParse, spec.MAX_KEY_BYTES)
	}

	fields := strings.FieldsFunc(string(data), func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})
	seq := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: key token %d (%q) is not an integer", ErrParse, i, f)
		}
		seq = append(seq, v)
	}
	return permutation.FromSequence(seq)
}

// WriteBuffer serializes buf as a text grid with a self-describing header.
func WriteBuffer(w io.Writer, buf *pixbuf.Buffer) error {
	bw := bufio.NewWriter(w)
	height, width, channels := buf.Shape()
	if _, err := fmt.Fprintf(bw, "%d,%d,%d\n", height, width, channels); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			for ch := 0; ch < channels; ch++ {
				if ch > 0 {
					if err := bw.WriteByte(','); err != nil {
						return fmt.Errorf("writing table: %w", err)
					}
				}
				if _, err := bw.WriteString(strconv.Itoa(int(buf.At(row, col, ch)))); err != nil {
					return fmt.Errorf("writing table: %w", err)
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing table: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

// ReadBuffer parses the grid back into a buffer of the header's shape.
// Lexical damage is ErrParse; a grid that does not match the declared
// height x width x channels factorization is pixbuf.ErrShape; values
// outside 0-255 are pixbuf.ErrDomain.
func ReadBuffer(r io.Reader) (*pixbuf.Buffer, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading table: %w", err)
		}
		return nil, fmt.Errorf("%w: missing header line", ErrParse)
	}
	headerFields := strings.Split(strings.TrimSpace(sc.Text()), ",")
	if len(headerFields) != 3 {
		return nil, fmt.Errorf("%w: header %q, want height,width,channels", ErrParse, sc.Text())
	}
	var dims [3]int
	for i, f := range headerFields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: header field %q is not an integer", ErrParse, f)
		}
		dims[i] = v
	}
	height, width, channels := dims[0], dims[1], dims[2]
	if _, err := pixbuf.New(height, width, channels); err != nil {
		return nil, err
	}

	pixels := height * width
	vals := make([]int, 0, pixels*channels)
	line := 0
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		line++
		if line > pixels {
			return nil, fmt.Errorf("%w: more than %d pixel lines for %dx%d",
				pixbuf.ErrShape, pixels, height, width)
		}
		fields := strings.Split(text, ",")
		if len(fields) != channels {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d",
				pixbuf.ErrShape, line, len(fields), channels)
		}
		for _, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d token %q is not an integer", ErrParse, line, f)
			}
			vals = append(vals, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	if line != pixels {
		return nil, fmt.Errorf("%w: %d pixel lines for %dx%d, want %d",
			pixbuf.ErrShape, line, height, width, pixels)
	}
	return pixbuf.FromInts(height, width, channels, vals)
}
