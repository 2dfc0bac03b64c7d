package keygen

import (
	"sync"
	"testing"

	"github.com/faanross/pixelcipher/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsBijective(t *testing.T) {
	gen := NewGenerator()

	for i := 0; i < 50; i++ {
		p := gen.Generate()

		var seen [spec.DOMAIN_SIZE]bool
		for b := 0; b < spec.DOMAIN_SIZE; b++ {
			out := p.Apply(byte(b))
			require.False(t, seen[out], "value %d produced twice", out)
			seen[out] = true
		}
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	p := NewSeededGenerator(42).Generate()
	q := NewSeededGenerator(42).Generate()
	r := NewSeededGenerator(43).Generate()

	assert.True(t, p.Equal(q))
	assert.False(t, p.Equal(r))
}

func TestGeneratorAdvances(t *testing.T) {
	gen := NewSeededGenerator(7)
	p := gen.Generate()
	q := gen.Generate()
	assert.False(t, p.Equal(q))
}

func TestConcurrentGenerate(t *testing.T) {
	gen := NewGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p := gen.Generate()
				if _, err := p.Inverse(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
