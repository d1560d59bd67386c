package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/meshview/internal/mesh"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"+ 10 10 90 90", Command{Kind: KindAdd, Edge: mesh.NewEdge(10, 10, 90, 90)}},
		{"- 0 0 10 10", Command{Kind: KindRemove, Edge: mesh.NewEdge(0, 0, 10, 10)}},
		{"+ -5 3  7 -2", Command{Kind: KindAdd, Edge: mesh.NewEdge(-5, 3, 7, -2)}},
		{"t 1500", Command{Kind: KindTime, Millis: 1500}},
		{"time: 0.25 0.1 (point partitioning)", Command{Kind: KindTime, Millis: 250}},
		{"time: 3", Command{Kind: KindTime, Millis: 3000}},
		{"time: 1500", Command{Kind: KindTime, Millis: 1500000}},
		{"# comment", Command{Kind: KindIgnored}},
		{"./mesh -oi -n 100", Command{Kind: KindIgnored}},
		{"", Command{Kind: KindIgnored}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCommand(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseCommand_Malformed(t *testing.T) {
	lines := []string{
		"+ 1 2 3",
		"+ 1 2 3 4 5",
		"- a b c d",
		"+",
		"t",
		"t soon",
		"time:",
		"time: later",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := ParseCommand(line)
			if !errors.Is(err, ErrMalformedLine) {
				t.Errorf("ParseCommand(%q) error = %v, want ErrMalformedLine", line, err)
			}
		})
	}
}

func TestReadHeader(t *testing.T) {
	r := NewReader(strings.NewReader("./mesh -oi -n 50\r\n0 100 -5 5\n+ 1 2 3 4\n"))
	h, err := r.ReadHeader()
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	want := Header{Title: "./mesh -oi -n 50", Bounds: mesh.Bounds{MinX: 0, MaxX: 100, MinY: -5, MaxY: 5}}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	line, err := r.Next()
	if err != nil || line != "+ 1 2 3 4" {
		t.Errorf("Next() = %q, %v", line, err)
	}
	if r.Line() != 3 {
		t.Errorf("Line() = %d, want 3", r.Line())
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReadHeader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMissingHeader},
		{"title only", "mesh\n", ErrMissingHeader},
		{"short bounds", "mesh\n0 100 0\n", ErrMalformedLine},
		{"non numeric", "mesh\n0 x 0 100\n", ErrMalformedLine},
		{"degenerate", "mesh\n0 0 0 100\n", mesh.ErrDegenerateBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input)).ReadHeader()
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadHeader_LineError(t *testing.T) {
	_, err := NewReader(strings.NewReader("mesh\n1 2\n")).ReadHeader()
	var le *LineError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LineError, got %T", err)
	}
	if le.Line != 2 || le.Text != "1 2" {
		t.Errorf("LineError = {%d %q}, want {2 \"1 2\"}", le.Line, le.Text)
	}
}
