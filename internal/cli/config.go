package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/legalcanvas/internal/server"
	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/export"
	"github.com/matzehuels/legalcanvas/pkg/generate"
	"github.com/matzehuels/legalcanvas/pkg/render/sheet"
)

// Config holds the settings read from config.toml.
//
//	model        = "gemini-3-pro-preview"
//	listen       = ":8080"
//	rasterizer   = "rsvg"   # or "rod"
//	timeout      = "5m"
//	canvas_width = 1200
//	browser_bin  = ""       # rsvg-convert or Chromium executable
type Config struct {
	Model       string   `toml:"model"`
	Listen      string   `toml:"listen"`
	Rasterizer  string   `toml:"rasterizer"`
	Timeout     duration `toml:"timeout"`
	CanvasWidth float64  `toml:"canvas_width"`
	BrowserBin  string   `toml:"browser_bin"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Model:       generate.DefaultModel,
		Listen:      ":8080",
		Rasterizer:  export.BackendRSVG,
		Timeout:     duration{server.DefaultTimeout},
		CanvasWidth: sheet.DefaultWidth,
	}
}

// LoadConfig reads path over the defaults. A missing file is reported with
// an error satisfying os.IsNotExist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, err
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, keys[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := export.NewRasterizer(c.Rasterizer, c.BrowserBin); err != nil {
		return err
	}
	if c.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must not be negative")
	}
	if c.CanvasWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas_width must not be negative")
	}
	return nil
}

// timeout bounds one generation. Zero selects the server default.
func (c Config) timeout() time.Duration {
	if c.Timeout.Duration <= 0 {
		return server.DefaultTimeout
	}
	return c.Timeout.Duration
}

// configFile returns the config path using XDG standard
// (~/.config/legalcanvas/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// duration decodes TOML strings such as "90s" or "5m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
