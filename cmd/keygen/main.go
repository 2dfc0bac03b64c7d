package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/faanross/pixelcipher/internal/keygen"
	"github.com/faanross/pixelcipher/internal/spec"
	"github.com/faanross/pixelcipher/internal/tabular"
)

// Standalone key generation, for preparing keys ahead of an encryption run.
func main() {
	outputFile := flag.String("output", spec.KEY_FILE, "Where to write the key file")
	seed := flag.Int64("seed", 0, "Deterministic seed (0 = random key)")

	flag.Parse()

	gen := keygen.NewGenerator()
	if *seed != 0 {
		gen = keygen.NewSeededGenerator(*seed)
	}

	key := gen.Generate()
	if err := tabular.SaveKey(*outputFile, key); err != nil {
		log.Fatalf("❌ Failed to save key: %v", err)
	}

	fmt.Printf("✅ Key written to %s (fingerprint %s)\n", *outputFile, key.Fingerprint())
}
