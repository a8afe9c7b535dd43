// Package config loads ytparallel settings from a TOML file with environment
// overrides. Cookie and browser settings are deliberately explicit
// configuration values handed to the downloader rather than ambient process
// state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Downloader configures the yt-dlp invocation.
type Downloader struct {
	// CookiesFromBrowser is passed to yt-dlp --cookies-from-browser. YouTube
	// serves autotranslated tracks only to logged-in sessions.
	CookiesFromBrowser string `toml:"cookies_from_browser"`
	Impersonate        string `toml:"impersonate"`
	Retries            int    `toml:"retries"`
}

// Aligner tunes the cue matching heuristics.
type Aligner struct {
	MatchWindowSeconds float64 `toml:"match_window_seconds"`
	MergeToleranceMS   int     `toml:"merge_tolerance_ms"`
	PreferOverlap      bool    `toml:"prefer_overlap"`
}

// IPA configures the espeak pronunciation annotations.
type IPA struct {
	Enabled bool `toml:"enabled"`
	// Voice overrides the espeak voice; empty means use the primary language
	// code.
	Voice      string `toml:"voice"`
	EspeakPath string `toml:"espeak_path"`
}

// Output configures where rendered transcripts land.
type Output struct {
	Dir string `toml:"dir"`
}

// Logging configures log output. Logs always go to stderr so stdout stays
// clean for transcripts written to "-".
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all ytparallel settings.
type Config struct {
	Downloader Downloader `toml:"downloader"`
	Aligner    Aligner    `toml:"aligner"`
	IPA        IPA        `toml:"ipa"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Downloader: Downloader{
			CookiesFromBrowser: "chrome",
			Impersonate:        "Safari",
			Retries:            3,
		},
		Aligner: Aligner{
			MatchWindowSeconds: 3,
			MergeToleranceMS:   500,
			PreferOverlap:      true,
		},
		IPA: IPA{
			Enabled:    true,
			EspeakPath: "espeak",
		},
		Output: Output{
			Dir: ".",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ytparallel", "config.toml"), nil
}

// Load reads the configuration file at path (or the default location when path
// is empty), applies environment overrides, and validates the result. A
// missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		var err error
		resolved, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if path != "" {
			return nil, fmt.Errorf("config file %s not found", path)
		}
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads a .env file from the working directory if one exists.
// Values already set in the environment win.
func LoadEnvFile() {
	_ = godotenv.Load()
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("YT_PARALLEL_COOKIES")); v != "" {
		c.Downloader.CookiesFromBrowser = v
	}
	if v := strings.TrimSpace(os.Getenv("YT_PARALLEL_OUTPUT_DIR")); v != "" {
		c.Output.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("YT_PARALLEL_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Downloader.Retries < 0 {
		return fmt.Errorf("downloader.retries must not be negative")
	}
	if c.Aligner.MatchWindowSeconds <= 0 {
		return fmt.Errorf("aligner.match_window_seconds must be positive")
	}
	if c.Aligner.MergeToleranceMS < 0 {
		return fmt.Errorf("aligner.merge_tolerance_ms must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// MatchWindow returns the aligner window as a duration.
func (c *Config) MatchWindow() time.Duration {
	return time.Duration(c.Aligner.MatchWindowSeconds * float64(time.Second))
}

// MergeTolerance returns the parser merge tolerance as a duration.
func (c *Config) MergeTolerance() time.Duration {
	return time.Duration(c.Aligner.MergeToleranceMS) * time.Millisecond
}
