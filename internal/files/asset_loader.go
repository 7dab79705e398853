package files

import (
	"fmt"
	"os"
	"path/filepath"
)

type AssetLoader struct {
	regularPath    string
	boldPath       string
	italicPath     string
	boldItalicPath string
}

// NewAssetLoader resolves font file names against assetsDir. Empty names stay
// empty and are skipped by Load.
func NewAssetLoader(assetsDir, regularFile, boldFile, italicFile, boldItalicFile string) *AssetLoader {
	join := func(name string) string {
		if name == "" {
			return ""
		}
		return filepath.Join(assetsDir, name)
	}
	return &AssetLoader{
		regularPath:    join(regularFile),
		boldPath:       join(boldFile),
		italicPath:     join(italicFile),
		boldItalicPath: join(boldItalicFile),
	}
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}

func (l *AssetLoader) Load() (*Assets, error) {
	assets := &Assets{}
	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{l.regularPath, &assets.FontRegular},
		{l.boldPath, &assets.FontBold},
		{l.italicPath, &assets.FontItalic},
		{l.boldItalicPath, &assets.FontBoldItalic},
	} {
		data, err := readOptional(f.path)
		if err != nil {
			return nil, err
		}
		*f.dst = data
	}
	return assets, nil
}

func (a *Assets) HasFonts() bool {
	return a.FontRegular != nil || a.FontBold != nil || a.FontItalic != nil || a.FontBoldItalic != nil
}
