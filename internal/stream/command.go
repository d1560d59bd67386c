package stream

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/meshview/internal/mesh"
)

type Kind int

const (
	KindIgnored Kind = iota
	KindTime
	KindAdd
	KindRemove
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	default:
		return "ignored"
	}
}

// Command is one parsed stream line.
type Command struct {
	Kind   Kind
	Edge   mesh.Edge
	Millis int64
}

// ParseCommand decodes a single command line. Lines whose first character is
// not a known command, and empty lines, come back as KindIgnored.
func ParseCommand(line string) (Command, error) {
	if line == "" {
		return Command{Kind: KindIgnored}, nil
	}
	switch line[0] {
	case 't':
		return parseTime(line)
	case '+':
		e, err := parseEdge(line)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindAdd, Edge: e}, nil
	case '-':
		e, err := parseEdge(line)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindRemove, Edge: e}, nil
	}
	return Command{Kind: KindIgnored}, nil
}

func parseEdge(line string) (mesh.Edge, error) {
	if len(line) < 2 {
		return mesh.Edge{}, fmt.Errorf("%w: no coordinates", ErrMalformedLine)
	}
	v, err := ints(strings.Fields(line[2:]), 4)
	if err != nil {
		return mesh.Edge{}, err
	}
	return mesh.NewEdge(v[0], v[1], v[2], v[3]), nil
}

// parseTime reads "t <millis>" or "time: <seconds> ...".
func parseTime(line string) (Command, error) {
	if rest, ok := strings.CutPrefix(line, "time:"); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return Command{}, fmt.Errorf("%w: no elapsed time", ErrMalformedLine)
		}
		sec, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || math.IsNaN(sec) || math.IsInf(sec, 0) {
			return Command{}, fmt.Errorf("%w: %q is not a number of seconds", ErrMalformedLine, fields[0])
		}
		return Command{Kind: KindTime, Millis: int64(math.Round(sec * 1000))}, nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) != 1 {
		return Command{}, fmt.Errorf("%w: want one millisecond value, got %d fields", ErrMalformedLine, len(fields))
	}
	ms, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q is not an integer", ErrMalformedLine, fields[0])
	}
	return Command{Kind: KindTime, Millis: ms}, nil
}
