package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"memeinator/internal/meme"
)

// Load reads CONFIG_FILE (default config.yaml) and the environment. It stops
// the process when the bot token is missing.
func Load(logger *log.Logger) *Config {
	cfg, err := LoadFile(logger, getEnv(logger, "CONFIG_FILE", "config.yaml", parseString))
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.BotToken == "" {
		logger.Fatal("TOKEN environment variable is required")
	}
	return cfg
}

// LoadFile applies the YAML file at path, if present, over the defaults and
// then environment overrides on top.
func LoadFile(logger *log.Logger, path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.BotToken = getEnv(logger, "TOKEN", cfg.BotToken, parseString)
	cfg.AssetsDir = getEnv(logger, "ASSETS_DIR", cfg.AssetsDir, parseString)
	cfg.TempDir = getEnv(logger, "TEMP_DIR", cfg.TempDir, parseString)
	cfg.PicturesDir = getEnv(logger, "PICTURES_DIR", cfg.PicturesDir, parseString)

	cfg.Fonts.Regular = getEnv(logger, "FONT_REGULAR", cfg.Fonts.Regular, parseString)
	cfg.Fonts.Bold = getEnv(logger, "FONT_BOLD", cfg.Fonts.Bold, parseString)
	cfg.Fonts.Italic = getEnv(logger, "FONT_ITALIC", cfg.Fonts.Italic, parseString)
	cfg.Fonts.BoldItalic = getEnv(logger, "FONT_BOLD_ITALIC", cfg.Fonts.BoldItalic, parseString)

	cfg.MaxFileSize = getEnv(logger, "MAX_FILE_SIZE", cfg.MaxFileSize, parseInt)
	cfg.PreviewSize = getEnv(logger, "PREVIEW_SIZE", cfg.PreviewSize, strconv.Atoi)

	cfg.ShareAddr = getEnv(logger, "SHARE_ADDR", cfg.ShareAddr, parseString)
	cfg.ShareBaseURL = getEnv(logger, "SHARE_BASE_URL", cfg.ShareBaseURL, parseString)

	return cfg, nil
}

// SwatchPalette turns the hex palette overrides into concrete colors on top
// of the default palette.
func (c *Config) SwatchPalette() (meme.Palette, error) {
	override := make(meme.Palette, len(c.Palette))
	for name, hex := range c.Palette {
		swatch, err := meme.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		cc, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", name, err)
		}
		r, g, b := cc.RGB255()
		override[swatch] = colorRGBA(r, g, b)
	}
	return meme.DefaultPalette.Merge(override), nil
}

func getEnv[T any](logger *log.Logger, key string, defaultValue T, parser func(string) (T, error)) T {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	parsed, err := parser(val)
	if err != nil {
		logger.Printf("[WARN]: invalid value for %s (%s). Using default: %v\n", key, val, defaultValue)
		return defaultValue
	}

	return parsed
}

func parseString(val string) (string, error) {
	return val, nil
}

func parseInt(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}
