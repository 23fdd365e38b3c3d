package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-ini/ini"
	"github.com/kelseyhightower/envconfig"

	"dupescan/internal/hash"
)

const DefaultReport = "duplicate_files.csv"

// Config carries every knob the scan needs. It is resolved once at
// startup and handed to components at construction; nothing reads
// configuration globally.
type Config struct {
	Algorithm string `envconfig:"ALGORITHM"`
	Workers   int    `envconfig:"WORKERS"`
	ChunkSize int    `envconfig:"CHUNK_SIZE"`
	Report    string `envconfig:"REPORT"`
}

func Default() Config {
	return Config{
		Algorithm: hash.AlgoSHA256,
		Workers:   runtime.NumCPU(),
		ChunkSize: hash.DefaultChunkSize,
		Report:    DefaultReport,
	}
}

// DefaultPath is where Load looks for the optional ini file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dupescan.ini")
}

// Load resolves configuration in increasing precedence: built-in
// defaults, the ini file at path (absent file is fine), then DUPESCAN_*
// environment variables. Flag overrides are applied by the caller.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process("dupescan", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) mergeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file %q: %w", path, err)
	}

	if k := f.Section("hash").Key("algorithm"); k.String() != "" {
		c.Algorithm = k.String()
	}
	if k := f.Section("performance").Key("workers"); k.String() != "" {
		n, err := k.Int()
		if err != nil {
			return fmt.Errorf("config %q: performance.workers: %w", path, err)
		}
		c.Workers = n
	}
	if k := f.Section("performance").Key("chunk_size"); k.String() != "" {
		n, err := k.Int()
		if err != nil {
			return fmt.Errorf("config %q: performance.chunk_size: %w", path, err)
		}
		c.ChunkSize = n
	}
	if k := f.Section("output").Key("report"); k.String() != "" {
		c.Report = k.String()
	}

	return nil
}

func (c *Config) validate() error {
	if !hash.Supported(c.Algorithm) {
		return fmt.Errorf("unsupported hash algorithm %q (want md5 or sha256)", c.Algorithm)
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.ChunkSize < 1 {
		c.ChunkSize = hash.DefaultChunkSize
	}
	if c.Report == "" {
		c.Report = DefaultReport
	}
	return nil
}
