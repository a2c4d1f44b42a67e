package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	latticeFile  = "lattice.json"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Ticks     int                `json:"ticks"`
	Scheme    string             `json:"scheme"`
	Config    *config.Config     `json:"config"`
	Events    []sim.PointerEvent `json:"events,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Snapshot is the final lattice of a run.
type Snapshot struct {
	Rows       int            `json:"rows"`
	Cols       int            `json:"cols"`
	RestLength float64        `json:"rest_length"`
	Nodes      []lattice.Node `json:"nodes"`
}

// Save writes a run directory holding metadata, the per-tick series and the
// final lattice. It returns the new run ID.
func (s *Store) Save(name string, cfg *config.Config, events []sim.PointerEvent, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Ticks:     result.Ticks,
		Scheme:    cfg.Scheme,
		Config:    cfg,
		Events:    events,
		Metrics:   make(map[string]float64, len(result.Metrics)),
	}
	for name, v := range result.Metrics {
		meta.Metrics[name] = finite(v)
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}

	snap := Snapshot{
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		RestLength: cfg.RestLength,
		Nodes:      make([]lattice.Node, len(result.Final)),
	}
	for i, n := range result.Final {
		snap.Nodes[i] = lattice.Node{
			X: finite(n.X), Y: finite(n.Y),
			VX: finite(n.VX), VY: finite(n.VY),
			Locked: n.Locked,
		}
	}
	if err := writeJSON(filepath.Join(runDir, latticeFile), snap); err != nil {
		return "", err
	}

	return runID, nil
}

// finite maps NaN and Inf to zero since JSON cannot carry them. A run that
// produced them also carries an entry in Errors.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := append([]string{"time"}, sim.SeriesNames...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range sim.SeriesNames {
			val := 0.0
			if series := result.Series[name]; i < len(series) {
				val = series[i]
			}
			row = append(row, strconv.FormatFloat(val, 'g', 10, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
	var meta RunMetadata
	if err := s.readJSON(runID, metadataFile, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadLattice(runID string) (*Snapshot, error) {
	var snap Snapshot
	if err := s.readJSON(runID, latticeFile, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) readJSON(runID, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// LoadSeries reads back the per-tick series of a run keyed by column name.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64)
	if len(records) < 2 {
		return []float64{}, series, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for j := 1; j < len(record) && j < len(header); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				val = 0
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return times, series, nil
}
