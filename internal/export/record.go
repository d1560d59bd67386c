package export

import (
	"encoding/json"
	"os"
	"time"

	"github.com/san-kum/meshview/internal/session"
)

// Record describes one replayed session.
type Record struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Bounds       [4]int             `json:"bounds"`
	Timestamp    time.Time          `json:"timestamp"`
	Pixels       int                `json:"pixels"`
	HesitationMs int64              `json:"hesitation_ms"`
	ElapsedMs    int64              `json:"elapsed_ms"`
	Image        string             `json:"image,omitempty"`
	Metrics      map[string]float64 `json:"metrics"`
	History      []float64          `json:"edge_history"`
}

func RecordOf(s *session.Session, pixels int, image string) Record {
	b := s.Header.Bounds
	return Record{
		ID:           s.ID,
		Title:        s.Header.Title,
		Bounds:       [4]int{b.MinX, b.MaxX, b.MinY, b.MaxY},
		Timestamp:    time.Now(),
		Pixels:       pixels,
		HesitationMs: s.Gate.Hesitation().Milliseconds(),
		ElapsedMs:    s.Elapsed().Milliseconds(),
		Image:        image,
		Metrics:      s.Stats.Summary().Values(),
		History:      s.Stats.History(),
	}
}

// WriteRecord writes r as indented JSON.
func WriteRecord(path string, r Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	return f.Close()
}
