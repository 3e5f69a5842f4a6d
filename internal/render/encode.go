package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/scene"
)

// Format is an export format.
type Format string

// Supported export formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath infers the export format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPNG, FormatSVG:
		return Format(ext), nil
	}
	return "", domain.NewRenderError("detect", ext, domain.ErrUnsupportedFormat)
}

// Encode writes frame to w in the given format.
func Encode(w io.Writer, format Format, frame *scene.Frame) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, Rasterize(frame)); err != nil {
			return domain.NewRenderError("encode", string(format), err)
		}
		return nil
	case FormatSVG:
		if _, err := io.WriteString(w, SVG(frame)); err != nil {
			return domain.NewRenderError("encode", string(format), err)
		}
		return nil
	}
	return domain.NewRenderError("encode", string(format), domain.ErrUnsupportedFormat)
}

// PNG returns frame as PNG bytes.
func PNG(frame *scene.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatPNG, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile exports frame to path, choosing the format from the extension.
func WriteFile(path string, frame *scene.Frame) error {
	if strings.TrimSpace(path) == "" {
		return domain.NewRenderError("write", "", domain.ErrInvalidFilePath)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.NewRenderError("write", string(format), err)
	}
	if err := Encode(f, format, frame); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return domain.NewRenderError("write", string(format), fmt.Errorf("close %s: %w", path, err))
	}
	return nil
}
