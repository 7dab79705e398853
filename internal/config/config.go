package config

import "image/color"

type Config struct {
	BotToken    string `yaml:"bot_token"`
	AssetsDir   string `yaml:"assets_dir"`
	TempDir     string `yaml:"temp_dir"`
	PicturesDir string `yaml:"pictures_dir"`

	Fonts FontConfig `yaml:"fonts"`

	MaxFileSize int64 `yaml:"max_file_size"`
	PreviewSize int   `yaml:"preview_size"`

	ShareAddr    string `yaml:"share_addr"`
	ShareBaseURL string `yaml:"share_base_url"`

	// Palette overrides swatch colors, e.g. {"red": "#e53935"}.
	Palette map[string]string `yaml:"palette"`
}

// FontConfig names font files inside AssetsDir. Empty means embedded.
type FontConfig struct {
	Regular    string `yaml:"regular"`
	Bold       string `yaml:"bold"`
	Italic     string `yaml:"italic"`
	BoldItalic string `yaml:"bold_italic"`
}

func Default() *Config {
	return &Config{
		AssetsDir:   "./assets",
		TempDir:     "./temp",
		PicturesDir: "./pictures",
		MaxFileSize: 10 * 1024 * 1024,
		PreviewSize: 512,
	}
}

func colorRGBA(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
