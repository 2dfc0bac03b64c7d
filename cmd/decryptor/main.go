package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/faanross/pixelcipher/internal/config"
	"github.com/faanross/pixelcipher/internal/session"
	"golang.org/x/term"
)

func main() {
	// Command line arguments
	keyFile := flag.String("key", "", "Path to key file")
	tableFile := flag.String("table", "", "Path to encrypted table file (.csv or .csv.gz)")
	outputDir := flag.String("output", "out", "Directory for the decrypted image")
	configFile := flag.String("config", "", "Optional YAML config file")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = config default)")

	flag.Parse()

	// Validate input
	if *keyFile == "" || *tableFile == "" {
		log.Fatal("❌ Please provide both -key and -table flags")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("❌ Config error: %v", err)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		fmt.Println("\n🔓 Image Substitution Decryptor")
		fmt.Println("=" + strings.Repeat("=", 40))
		fmt.Printf("\n🔑 Key file:   %s\n", *keyFile)
		fmt.Printf("📄 Table file: %s\n", *tableFile)
	}

	sess := session.New(cfg, nil)
	res, err := sess.Decrypt(context.Background(), *keyFile, *tableFile, *outputDir)
	if err != nil {
		log.Fatalf("❌ Decryption failed: %v", err)
	}

	if interactive {
		fmt.Printf("\n✅ Decryption complete!\n")
		fmt.Printf("   Dimensions: %dx%d (%d channels)\n", res.Width, res.Height, res.Channels)
		fmt.Printf("   Key fingerprint: %s\n", res.Fingerprint)
		fmt.Printf("   Image saved to:  %s\n", res.DecryptedImage)
	} else {
		fmt.Printf("image=%s\n", res.DecryptedImage)
	}
}
