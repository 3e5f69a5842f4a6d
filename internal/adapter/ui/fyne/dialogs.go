package fyne

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// SongExtensions are the file types offered by the song dialog.
var SongExtensions = []string{".mp3", ".m4a", ".flac", ".ogg"}

// SongDialog is a helper for picking a song file whose tags seed the mood.
type SongDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewSongDialog creates a new song dialog.
func NewSongDialog(window fyne.Window, callback func(string), logger *slog.Logger) *SongDialog {
	return &SongDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the file dialog.
func (d *SongDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		filePath := reader.URI().Path()
		if d.callback != nil {
			d.callback(filePath)
		}
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter(SongExtensions))
	open.Show()
}
