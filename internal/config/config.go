package config

import (
	"fmt"
	"os"

	"github.com/faanross/pixelcipher/internal/spec"
	"gopkg.in/yaml.v2"
)

// Config carries session defaults. Unset fields are filled after load, so a
// partial YAML file is fine.
type Config struct {
	KeyFile       string `yaml:"keyFile"`
	TableFile     string `yaml:"tableFile"`
	PreviewFile   string `yaml:"previewFile"`
	DecryptedFile string `yaml:"decryptedFile"`
	Compress      bool   `yaml:"compress"`
	Workers       int    `yaml:"workers"`
	LogLevel      string `yaml:"logLevel"`
}

// Default returns the stock configuration used when no file is given.
func Default() Config {
	var c Config
	c.fillDefaults()
	return c
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	c.fillDefaults()
	return c, nil
}

func (c *Config) fillDefaults() {
	if c.KeyFile == "" {
		c.KeyFile = spec.KEY_FILE
	}
	if c.TableFile == "" {
		c.TableFile = spec.TABLE_FILE
	}
	if c.PreviewFile == "" {
		c.PreviewFile = spec.PREVIEW_FILE
	}
	if c.DecryptedFile == "" {
		c.DecryptedFile = spec.DECRYPTED_FILE
	}
	if c.Workers == 0 {
		c.Workers = spec.DEFAULT_WORKERS
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
