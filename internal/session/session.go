// Package session wires the key generator, codec and persistence layer into
// the two call shapes the binaries need: encrypt (image -> table + key) and
// decrypt (table + key -> image). Image decoding and encoding happen here,
// at the boundary; the codec only ever sees pixel buffers.
package session

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/faanross/pixelcipher/internal/codec"
	"github.com/faanross/pixelcipher/internal/config"
	"github.com/faanross/pixelcipher/internal/keygen"
	"github.com/faanross/pixelcipher/internal/pixbuf"
	"github.com/faanross/pixelcipher/internal/tabular"
	"github.com/sirupsen/logrus"
)

// Session runs encryption and decryption flows end to end. Errors are
// returned to the caller as-is; the session never retries.
type Session struct {
	cfg config.Config
	log *logrus.Logger
	cdc *codec.Codec
	gen *keygen.Generator
}

// EncryptResult lists the artifacts an encryption run produced.
type EncryptResult struct {
	KeyFile      string
	TableFile    string
	PreviewImage string
	Fingerprint  string
	Height       int
	Width        int
	Channels     int
}

// DecryptResult lists the artifacts a decryption run produced.
type DecryptResult struct {
	DecryptedImage string
	Fingerprint    string
	Height         int
	Width          int
	Channels       int
}

// New builds a session from config. A nil logger gets a default logger at
// the configured level.
func New(cfg config.Config, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
		if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
	}
	return &Session{
		cfg: cfg,
		log: log,
		cdc: codec.New(cfg.Workers),
		gen: keygen.NewGenerator(),
	}
}

// WithGenerator swaps the key source, used for seeded reproducible runs.
func (s *Session) WithGenerator(g *keygen.Generator) *Session {
	s.gen = g
	return s
}

// Encrypt loads the image at imagePath, encrypts it under a fresh key, and
// writes the key, table and preview artifacts into outputDir.
func (s *Session) Encrypt(ctx context.Context, imagePath, outputDir string) (*EncryptResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	img, err := loadImage(imagePath)
	if err != nil {
		return nil, err
	}
	buf := pixbuf.FromImage(img)
	height, width, channels := buf.Shape()
	s.log.WithFields(logrus.Fields{
		"image":    imagePath,
		"height":   height,
		"width":    width,
		"channels": channels,
	}).Info("image loaded")

	key := s.gen.Generate()
	keyPath := filepath.Join(outputDir, s.cfg.KeyFile)
	if err := tabular.SaveKey(keyPath, key); err != nil {
		return nil, err
	}
	s.log.WithField("fingerprint", key.Fingerprint()).Info("key generated and saved")

	enc, err := s.cdc.Encode(ctx, buf, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting buffer: %w", err)
	}

	tablePath := filepath.Join(outputDir, s.cfg.TableFile)
	if s.cfg.Compress {
		tablePath += ".gz"
	}
	if err := tabular.SaveBuffer(tablePath, enc, s.cfg.Compress); err != nil {
		return nil, err
	}

	previewPath := filepath.Join(outputDir, s.cfg.PreviewFile)
	if err := savePNG(previewPath, enc); err != nil {
		return nil, err
	}

	s.log.WithField("elapsed", time.Since(start)).Info("encryption session complete")
	return &EncryptResult{
		KeyFile:      keyPath,
		TableFile:    tablePath,
		PreviewImage: previewPath,
		Fingerprint:  key.Fingerprint(),
		Height:       height,
		Width:        width,
		Channels:     channels,
	}, nil
}

// Decrypt reconstructs the image from the key and table artifacts alone and
// writes it into outputDir. The original image file is never consulted.
func (s *Session) Decrypt(ctx context.Context, keyFile, tableFile, outputDir string) (*DecryptResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	key, err := tabular.LoadKey(keyFile)
	if err != nil {
		return nil, err
	}
	s.log.WithField("fingerprint", key.Fingerprint()).Info("key loaded and validated")

	buf, err := tabular.LoadBuffer(tableFile)
	if err != nil {
		return nil, err
	}
	height, width, channels := buf.Shape()
	s.log.WithFields(logrus.Fields{
		"height":   height,
		"width":    width,
		"channels": channels,
	}).Info("table loaded")

	dec, err := s.cdc.Decode(ctx, buf, key)
	if err != nil {
		return nil, fmt.Errorf("decrypting buffer: %w", err)
	}

	outPath := filepath.Join(outputDir, s.cfg.DecryptedFile)
	if err := savePNG(outPath, dec); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"output":  outPath,
		"elapsed": time.Since(start),
	}).Info("decryption session complete")
	return &DecryptResult{
		DecryptedImage: outPath,
		Fingerprint:    key.Fingerprint(),
		Height:         height,
		Width:          width,
		Channels:       channels,
	}, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func savePNG(path string, buf *pixbuf.Buffer) error {
	img, err := buf.Image()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}
