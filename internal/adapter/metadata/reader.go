// Package metadata reads song titles and artists from local audio files so
// the overlay has something to show without a remote catalogue.
package metadata

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/moodviz/moodviz/internal/domain"
)

// Info is what the overlay needs from a file's tags.
type Info struct {
	Title  string
	Artist string
	Album  string
	Genre  string
}

// ReadFile extracts tags from the audio file at path. Files without
// readable tags are not an error: the title falls back to the file name.
func ReadFile(path string) (Info, error) {
	if strings.TrimSpace(path) == "" {
		return Info{}, domain.ErrInvalidFilePath
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, domain.ErrFileNotFound
		}
		return Info{}, err
	}
	defer f.Close()

	info := Read(f)
	if info.Title == "" {
		info.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return info, nil
}

// Read extracts tags from r. Unreadable or missing tags yield a zero Info.
func Read(r io.ReadSeeker) Info {
	m, err := tag.ReadFrom(r)
	if err != nil || m == nil {
		return Info{}
	}
	return Info{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Genre:  strings.TrimSpace(m.Genre()),
	}
}

// Apply fills empty title and artist fields of attrs from info.
func (info Info) Apply(attrs domain.SongAttributes) domain.SongAttributes {
	if attrs.Title == "" {
		attrs.Title = info.Title
	}
	if attrs.Artist == "" {
		attrs.Artist = info.Artist
	}
	return attrs
}
