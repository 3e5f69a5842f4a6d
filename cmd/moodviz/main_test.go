package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodviz/moodviz/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "MoodViz dev")
}

func TestMoodsCommand(t *testing.T) {
	output, err := execute(t, "moods")
	require.NoError(t, err)
	for _, name := range []string{"joy", "calm", "energy", "sad", "sunburst", "fog"} {
		assert.Contains(t, output, name)
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joy.png")

	output, err := execute(t, "render", "--log-level", "error",
		"--mood", "joy", "--tempo", "140", "--energy", "0.9",
		"--frames", "3", "--seed", "42", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, output, "sunburst")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderCommand_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "render", "--log-level", "error", "--out", filepath.Join(t.TempDir(), "x.bmp"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRenderCommand_BadConfig(t *testing.T) {
	_, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestSongFromFlags(t *testing.T) {
	cmd := newRootCmd()
	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	song, err := songFromFlags(render)
	require.NoError(t, err)
	assert.Nil(t, song, "no session flags means the default session")

	require.NoError(t, render.ParseFlags([]string{"--valence", "0.8", "--title", "Song"}))
	song, err = songFromFlags(render)
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Empty(t, song.Mood)
	require.NotNil(t, song.Valence)
	assert.Equal(t, 0.8, *song.Valence)
	assert.Nil(t, song.Energy)
	assert.Equal(t, "Song", song.Title)
}

func TestSongFromFlags_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late night.mp3")
	require.NoError(t, os.WriteFile(path, []byte("no tags here"), 0o600))

	cmd := newRootCmd()
	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)
	require.NoError(t, render.ParseFlags([]string{"--file", path, "--artist", "Band"}))

	song, err := songFromFlags(render)
	require.NoError(t, err)
	require.NotNil(t, song)
	assert.Equal(t, "late night", song.Title)
	assert.Equal(t, "Band", song.Artist)
}
