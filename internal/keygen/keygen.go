package keygen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"sync"

	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/spec"
)

// Generator produces substitution keys from its own rand source. Every
// Generator is independently seeded, so concurrent sessions never touch
// shared random state.
type Generator struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewGenerator seeds a generator from the operating system entropy pool.
func NewGenerator() *Generator {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("keygen: cannot seed generator: %v", err))
	}
	return NewSeededGenerator(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewSeededGenerator builds a deterministic generator for reproducible keys.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: mrand.New(mrand.NewSource(seed))}
}

// Generate returns a uniformly random permutation of {0..255}. The shuffle
// guarantees bijectivity by construction; no post-hoc repair is applied.
func (g *Generator) Generate() *permutation.Permutation {
	g.mu.Lock()
	seq := g.rng.Perm(spec.DOMAIN_SIZE)
	g.mu.Unlock()

	p, err := permutation.FromSequence(seq)
	if err != nil {
		panic(fmt.Sprintf("keygen: shuffle produced invalid permutation: %v", err))
	}
	return p
}
