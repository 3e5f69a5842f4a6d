package metadata

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
)

// id3v1 builds a file body followed by an ID3v1 trailer.
func id3v1(title, artist, album string) []byte {
	field := func(s string, n int) []byte {
		b := make([]byte, n)
		copy(b, s)
		return b
	}

	var buf bytes.Buffer
	buf.Write(make([]byte, 256))
	buf.WriteString("TAG")
	buf.Write(field(title, 30))
	buf.Write(field(artist, 30))
	buf.Write(field(album, 30))
	buf.WriteString("2001")
	buf.Write(make([]byte, 30))
	buf.WriteByte(255)
	return buf.Bytes()
}

func TestRead_ID3v1(t *testing.T) {
	info := Read(bytes.NewReader(id3v1("Teardrop", "Massive Attack", "Mezzanine")))

	assert.Equal(t, "Teardrop", info.Title)
	assert.Equal(t, "Massive Attack", info.Artist)
	assert.Equal(t, "Mezzanine", info.Album)
}

func TestRead_NoTags(t *testing.T) {
	info := Read(bytes.NewReader(make([]byte, 512)))
	assert.Equal(t, Info{}, info)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	tagged := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(tagged, id3v1("Angel", "Massive Attack", ""), 0644))
	info, err := ReadFile(tagged)
	require.NoError(t, err)
	assert.Equal(t, "Angel", info.Title)

	plain := filepath.Join(dir, "Night Drive.wav")
	require.NoError(t, os.WriteFile(plain, make([]byte, 512), 0644))
	info, err = ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", info.Title)
	assert.Empty(t, info.Artist)

	_, err = ReadFile(filepath.Join(dir, "missing.mp3"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = ReadFile(" ")
	assert.ErrorIs(t, err, domain.ErrInvalidFilePath)
}

func TestInfo_Apply(t *testing.T) {
	info := Info{Title: "From Tags", Artist: "Tagged Artist"}

	attrs := info.Apply(domain.SongAttributes{Mood: "calm", Title: "Explicit"})
	assert.Equal(t, "Explicit", attrs.Title)
	assert.Equal(t, "Tagged Artist", attrs.Artist)
	assert.Equal(t, "calm", attrs.Mood)
}
