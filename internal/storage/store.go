package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/san-kum/flingsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var traceHeader = []string{"time", "ball", "x", "y", "vx", "vy", "absorbed"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Board       string    `json:"board"`
	Fingerprint string    `json:"fingerprint"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Dt          float64   `json:"dt"`
	Duration    float64   `json:"duration"`
	Frames      int       `json:"frames"`
	Collisions  int       `json:"collisions"`
	Absorbed    int       `json:"absorbed"`
	Balls       []string  `json:"balls"`

	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Run is a finished simulation ready to be recorded.
type Run struct {
	Board    string
	Source   []byte
	Seed     int64
	Dt       float64
	Duration float64
	Result   *sim.Result
	Samples  []sim.Sample
	Metrics  map[string]float64
}

// Fingerprint identifies a board source so runs of the same layout can be
// grouped.
func Fingerprint(src []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(src))
}

func (s *Store) Save(run Run) (string, error) {
	if run.Board == "" || run.Board == "." || run.Board == ".." || strings.ContainsAny(run.Board, `/\`) {
		return "", fmt.Errorf("invalid board name %q for a run id", run.Board)
	}
	runID := fmt.Sprintf("%s_%s", run.Board, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Board:       run.Board,
		Fingerprint: Fingerprint(run.Source),
		Timestamp:   time.Now(),
		Seed:        run.Seed,
		Dt:          run.Dt,
		Duration:    run.Duration,
		Balls:       ballNames(run.Samples),
		Metrics:     run.Metrics,
	}
	if run.Result != nil {
		meta.Frames = run.Result.Frames
		meta.Collisions = run.Result.Collisions
		meta.Absorbed = run.Result.Absorbed
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), run.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrace(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			s.Ball,
			strconv.FormatFloat(s.X, 'f', 6, 64),
			strconv.FormatFloat(s.Y, 'f', 6, 64),
			strconv.FormatFloat(s.VX, 'f', 6, 64),
			strconv.FormatFloat(s.VY, 'f', 6, 64),
			strconv.FormatBool(s.Absorbed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ballNames(samples []sim.Sample) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, s := range samples {
		if !seen[s.Ball] {
			seen[s.Ball] = true
			names = append(names, s.Ball)
		}
	}
	return names
}

// List returns every recorded run, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		s, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", traceFile, i+2, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseSample(record []string) (sim.Sample, error) {
	s := sim.Sample{Ball: record[1]}
	var err error
	for _, f := range []struct {
		idx int
		dst *float64
	}{
		{0, &s.Time},
		{2, &s.X},
		{3, &s.Y},
		{4, &s.VX},
		{5, &s.VY},
	} {
		if *f.dst, err = strconv.ParseFloat(record[f.idx], 64); err != nil {
			return s, err
		}
	}
	if s.Absorbed, err = strconv.ParseBool(record[6]); err != nil {
		return s, err
	}
	return s, nil
}
