package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/meshview/internal/session"
)

var ErrUnknownFormat = errors.New("export: unknown format")

const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// FormatFor picks a format from an explicit name or, failing that, from the
// file extension. SVG is the default.
func FormatFor(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "" {
			format = FormatSVG
		}
	}
	switch format {
	case FormatSVG, FormatPNG:
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FrameOf captures the session's current edge set on a square canvas of side
// pixels.
func FrameOf(s *session.Session, pixels int, style Style) (Frame, error) {
	proj, err := s.Projection(pixels, style.DotSize)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Title:     s.Header.Title,
		SessionID: s.ID,
		Edges:     s.Edges.Snapshot(),
		Proj:      proj,
		Style:     style,
	}, nil
}

// Save writes the session's current mesh to path.
func Save(path, format string, s *session.Session, pixels int, style Style) error {
	format, err := FormatFor(path, format)
	if err != nil {
		return err
	}
	frame, err := FrameOf(s, pixels, style)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case FormatPNG:
		err = WritePNG(f, frame)
	default:
		err = WriteSVG(f, frame)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
