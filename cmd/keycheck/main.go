package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/faanross/pixelcipher/internal/permutation"
	"github.com/faanross/pixelcipher/internal/spec"
	"github.com/faanross/pixelcipher/internal/tabular"
)

func main() {
	// Command line arguments
	keyFile := flag.String("key", "", "Key file to validate")
	analyze := flag.Bool("analyze", false, "Show substitution statistics")

	flag.Parse()

	if *keyFile == "" {
		log.Fatal("❌ Please provide a key file with -key flag")
	}

	fmt.Println("\n🔑 Key File Inspector")
	fmt.Println("=" + strings.Repeat("=", 40))

	key, err := tabular.LoadKey(*keyFile)
	if err != nil {
		if errors.Is(err, permutation.ErrInvalidPermutation) {
			log.Fatalf("❌ Key is not a valid permutation: %v", err)
		}
		if errors.Is(err, tabular.ErrParse) {
			log.Fatalf("❌ Key file is malformed: %v", err)
		}
		log.Fatalf("❌ Cannot read key: %v", err)
	}

	fmt.Printf("\n✅ Valid substitution key\n")
	fmt.Printf("   File:        %s\n", *keyFile)
	fmt.Printf("   Entries:     %d\n", spec.DOMAIN_SIZE)
	fmt.Printf("   Fingerprint: %s\n", key.Fingerprint())

	if *analyze {
		analyzeKey(key)
	}
}

// analyzeKey reports how far the table moves each byte. A high fixed-point
// count means many pixel values survive encryption unchanged.
func analyzeKey(key *permutation.Permutation) {
	fixed := 0
	totalShift := 0
	maxShift := 0

	for b := 0; b < spec.DOMAIN_SIZE; b++ {
		out := int(key.Apply(byte(b)))
		shift := out - b
		if shift < 0 {
			shift = -shift
		}
		if shift == 0 {
			fixed++
		}
		totalShift += shift
		if shift > maxShift {
			maxShift = shift
		}
	}

	fmt.Printf("\n📊 Substitution Statistics:\n")
	fmt.Printf("   Fixed points:     %d / %d\n", fixed, spec.DOMAIN_SIZE)
	fmt.Printf("   Mean displacement: %.1f\n", float64(totalShift)/float64(spec.DOMAIN_SIZE))
	fmt.Printf("   Max displacement:  %d\n", maxShift)

	if fixed > spec.DOMAIN_SIZE/8 {
		fmt.Printf("   ⚠️  Many values map to themselves - consider regenerating\n")
	} else {
		fmt.Printf("   ✅ Healthy displacement profile\n")
	}
}
