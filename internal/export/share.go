package export

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"memeinator/internal/meme"
)

const ShareTitle = "Share Meme"

var filenamePattern = regexp.MustCompile(`^meme_\d+\.png$`)

// ValidFilename reports whether name looks like something Export produced.
func ValidFilename(name string) bool {
	return filenamePattern.MatchString(name)
}

// PrepareShare builds a share descriptor for a saved artifact. location is
// either a URI or a filesystem path and must not be empty. Without an
// artifact it returns meme.ErrNotReady.
func PrepareShare(artifact *meme.Artifact, location string) (*meme.ShareDescriptor, error) {
	if artifact == nil {
		return nil, meme.ErrNotReady
	}

	d := &meme.ShareDescriptor{
		Filename:  artifact.Filename,
		MimeType:  meme.MimePNG,
		GrantRead: true,
		Title:     ShareTitle,
	}

	switch {
	case location == "":
		return nil, fmt.Errorf("share %s: no stored location", artifact.Filename)
	case isURI(location):
		d.URI = location
	default:
		abs, err := filepath.Abs(location)
		if err != nil {
			abs = location
		}
		d.Path = abs
		d.URI = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
	return d, nil
}

func isURI(s string) bool {
	for _, scheme := range []string{"http://", "https://", "file://", "content://"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}
