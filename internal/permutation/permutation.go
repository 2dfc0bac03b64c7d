package permutation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/faanross/pixelcipher/internal/spec"
	"golang.org/x/crypto/blake2b"
)

// ErrInvalidPermutation reports a key table that is not a bijection on {0..255}.
var ErrInvalidPermutation = errors.New("key table is not a permutation of 0-255")

// Permutation is a bijection Byte -> Byte used as the substitution key.
// Build one with FromSequence or keygen; the zero value is not a valid table.
type Permutation struct {
	fwd [spec.DOMAIN_SIZE]byte

	invOnce sync.Once
	inv     [spec.DOMAIN_SIZE]byte
	invErr  error
}

// FromSequence validates seq as a permutation of {0..255} and builds the
// table. Every key reconstructed from external data (a key file, a
// hand-typed list) must pass through here.
func FromSequence(seq []int) (*Permutation, error) {
	if len(seq) != spec.DOMAIN_SIZE {
		return nil, fmt.Errorf("%w: got %d entries, want %d",
			ErrInvalidPermutation, len(seq), spec.DOMAIN_SIZE)
	}

	p := &Permutation{}
	var seen [spec.DOMAIN_SIZE]bool
	for i, v := range seq {
		if v < 0 || v >= spec.DOMAIN_SIZE {
			return nil, fmt.Errorf("%w: entry %d is %d, outside 0-255",
				ErrInvalidPermutation, i, v)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: value %d appears more than once",
				ErrInvalidPermutation, v)
		}
		seen[v] = true
		p.fwd[i] = byte(v)
	}
	return p, nil
}

// Apply maps a source byte through the forward table.
func (p *Permutation) Apply(v byte) byte { return p.fwd[v] }

// Table returns a copy of the forward table.
func (p *Permutation) Table() [spec.DOMAIN_SIZE]byte { return p.fwd }

// Inverse derives the reverse lookup (inverse[fwd[b]] == b) in O(256) and
// caches it. It fails only when the forward table holds duplicates, which a
// Permutation built by FromSequence can never do.
func (p *Permutation) Inverse() (*[spec.DOMAIN_SIZE]byte, error) {
	p.invOnce.Do(func() {
		var seen [spec.DOMAIN_SIZE]bool
		for i, v := range p.fwd {
			if seen[v] {
				p.invErr = fmt.Errorf("%w: value %d appears more than once",
					ErrInvalidPermutation, v)
				return
			}
			seen[v] = true
			p.inv[v] = byte(i)
		}
	})
	if p.invErr != nil {
		return nil, p.invErr
	}
	return &p.inv, nil
}

// Sequence returns the table as integers, index i holding the image of
// source byte i. This is the order the key artifact persists.
func (p *Permutation) Sequence() []int {
	seq := make([]int, spec.DOMAIN_SIZE)
	for i, v := range p.fwd {
		seq[i] = int(v)
	}
	return seq
}

// Fingerprint returns a short hex digest of the table, enough to tell key
// files apart in logs without printing all 256 entries.
func (p *Permutation) Fingerprint() string {
	sum := blake2b.Sum256(p.fwd[:])
	return fmt.Sprintf("%X", sum[:spec.FINGERPRINT_BYTES])
}

// Equal reports whether two tables map every byte identically.
func (p *Permutation) Equal(o *Permutation) bool {
	if o == nil {
		return false
	}
	return p.fwd == o.fwd
}
