// Package storage keeps named views and benchmark measurements on disk.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/mandel/internal/view"
)

var ErrBadName = errors.New("mandel: bookmark names must be non-empty and must not contain path separators")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Bookmark is a saved view together with the settings it was found with.
type Bookmark struct {
	Name      string        `json:"name"`
	Backend   string        `json:"backend"`
	MaxIter   int           `json:"max_iter"`
	View      view.Snapshot `json:"view"`
	Note      string        `json:"note,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return filepath.Join(s.baseDir, name+".json"), nil
}

// Save writes b, replacing any bookmark of the same name.
func (s *Store) Save(b Bookmark) error {
	path, err := s.path(b.Name)
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) Load(name string) (*Bookmark, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bookmark %s: %w", name, err)
	}
	return &b, nil
}

// List returns every readable bookmark sorted by name.
func (s *Store) List() ([]Bookmark, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Bookmark{}, nil
		}
		return nil, err
	}

	marks := make([]Bookmark, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		b, err := s.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		marks = append(marks, *b)
	}

	sort.Slice(marks, func(i, j int) bool { return marks[i].Name < marks[j].Name })
	return marks, nil
}

func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Measurement is one timed render.
type Measurement struct {
	Backend  string
	Zoom     string
	Elapsed  time.Duration
	MeanIter float64
	Interior float64
}

var measurementHeader = []string{"backend", "zoom", "elapsed_ms", "mean_iter", "interior"}

func WriteMeasurements(w io.Writer, ms []Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(measurementHeader); err != nil {
		return err
	}
	for _, m := range ms {
		row := []string{
			m.Backend,
			m.Zoom,
			strconv.FormatFloat(float64(m.Elapsed)/float64(time.Millisecond), 'f', 3, 64),
			strconv.FormatFloat(m.MeanIter, 'f', 3, 64),
			strconv.FormatFloat(m.Interior, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadMeasurements(r io.Reader) ([]Measurement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(measurementHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Measurement{}, nil
	}

	ms := make([]Measurement, 0, len(records)-1)
	for i, rec := range records[1:] {
		millis, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		mean, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		interior, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ms = append(ms, Measurement{
			Backend:  rec[0],
			Zoom:     rec[1],
			Elapsed:  time.Duration(millis * float64(time.Millisecond)),
			MeanIter: mean,
			Interior: interior,
		})
	}
	return ms, nil
}
