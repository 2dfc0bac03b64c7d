package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/faanross/pixelcipher/internal/config"
	"github.com/faanross/pixelcipher/internal/keygen"
	"github.com/faanross/pixelcipher/internal/session"
	"golang.org/x/term"
)

func main() {
	// Command line arguments
	inputFile := flag.String("input", "", "Path to image to encrypt (PNG or JPEG)")
	outputDir := flag.String("output", "out", "Directory for key and encrypted artifacts")
	configFile := flag.String("config", "", "Optional YAML config file")
	compress := flag.Bool("compress", false, "Gzip the table artifact")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = config default)")
	seed := flag.Int64("seed", 0, "Deterministic key seed (0 = random key)")

	flag.Parse()

	// Validate input
	if *inputFile == "" {
		log.Fatal("❌ Please provide an input image with -input flag")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("❌ Config error: %v", err)
		}
	}
	if *compress {
		cfg.Compress = true
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	// Decorative sections only when someone is watching
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		fmt.Println("\n🔐 Image Substitution Encryptor")
		fmt.Println("=" + strings.Repeat("=", 40))
		fmt.Printf("\n📄 Input image: %s\n", *inputFile)
	}

	sess := session.New(cfg, nil)
	if *seed != 0 {
		sess = sess.WithGenerator(keygen.NewSeededGenerator(*seed))
	}

	res, err := sess.Encrypt(context.Background(), *inputFile, *outputDir)
	if err != nil {
		log.Fatalf("❌ Encryption failed: %v", err)
	}

	if interactive {
		fmt.Printf("\n✅ Encryption complete!\n")
		fmt.Printf("   Dimensions: %dx%d (%d channels)\n", res.Width, res.Height, res.Channels)
		fmt.Printf("   Key:        %s (fingerprint %s)\n", res.KeyFile, res.Fingerprint)
		fmt.Printf("   Table:      %s\n", res.TableFile)
		fmt.Printf("   Preview:    %s\n", res.PreviewImage)
		fmt.Printf("\n🔓 To decrypt: decryptor -key %s -table %s\n", res.KeyFile, res.TableFile)
	} else {
		fmt.Printf("key=%s table=%s preview=%s\n", res.KeyFile, res.TableFile, res.PreviewImage)
	}
}
