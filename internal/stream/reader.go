package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/meshview/internal/mesh"
)

const maxLineSize = 1 << 20

// Header is the session preamble: the window title and the bounding box.
type Header struct {
	Title  string
	Bounds mesh.Bounds
}

// Reader yields raw lines and tracks line numbers for error reporting.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next line without its terminator, or io.EOF once the
// stream is exhausted.
func (r *Reader) Next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	r.line++
	return strings.TrimSuffix(r.sc.Text(), "\r"), nil
}

// Line is the number of the line last returned by Next.
func (r *Reader) Line() int { return r.line }

// ReadHeader consumes the title and bounding-box lines.
func (r *Reader) ReadHeader() (Header, error) {
	title, err := r.Next()
	if err == io.EOF {
		return Header{}, fmt.Errorf("%w: no title line", ErrMissingHeader)
	}
	if err != nil {
		return Header{}, err
	}

	text, err := r.Next()
	if err == io.EOF {
		return Header{}, fmt.Errorf("%w: no bounding box line", ErrMissingHeader)
	}
	if err != nil {
		return Header{}, err
	}

	b, err := ParseBounds(text)
	if err != nil {
		return Header{}, &LineError{Line: r.line, Text: text, Err: err}
	}
	return Header{Title: strings.TrimSpace(title), Bounds: b}, nil
}

// ParseBounds parses "minX maxX minY maxY" and rejects degenerate boxes.
func ParseBounds(s string) (mesh.Bounds, error) {
	v, err := ints(strings.Fields(s), 4)
	if err != nil {
		return mesh.Bounds{}, err
	}
	b := mesh.Bounds{MinX: v[0], MaxX: v[1], MinY: v[2], MaxY: v[3]}
	if err := b.Validate(); err != nil {
		return mesh.Bounds{}, err
	}
	return b, nil
}

func ints(fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("%w: want %d integers, got %d fields", ErrMalformedLine, n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrMalformedLine, f)
		}
		out[i] = v
	}
	return out, nil
}
