package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/sim"
	"github.com/causelab/causim/internal/state"
)

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
	Steps     int                `json:"steps"`
	Dt        float64            `json:"dt"`
	Damping   float64            `json:"damping"`
	Loops     []cycles.Record    `json:"loopsDetected"`
	NewState  state.FiveFactor   `json:"newState"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run as metadata.json plus series.csv under a
// timestamped directory and returns the run id.
func (s *Store) Save(name string, opts sim.Options, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Steps:     opts.Steps,
		Dt:        opts.Dt,
		Damping:   opts.Damping,
		Loops:     result.Loops,
		NewState:  result.NewState,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	ids := seriesIDs(result.Series)
	header := append([]string{"step"}, ids...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.Series {
		row := make([]string, 0, len(ids)+1)
		row = append(row, strconv.Itoa(snap.Step))
		for _, id := range ids {
			row = append(row, strconv.FormatFloat(snap.Values[id], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a stored trajectory back as variable ids plus one
// value row per snapshot, in file order.
func (s *Store) LoadSeries(runID string) ([]string, sim.TimeSeries, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 || len(rows[0]) < 2 {
		return nil, nil, fmt.Errorf("run %s: empty series", runID)
	}

	ids := rows[0][1:]
	series := make(sim.TimeSeries, 0, len(rows)-1)
	for _, row := range rows[1:] {
		step, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: bad step %q", runID, row[0])
		}
		values := make(map[string]float64, len(ids))
		for i, id := range ids {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: bad value %q", runID, row[i+1])
			}
			values[id] = v
		}
		series = append(series, sim.Snapshot{Step: step, Values: values})
	}
	return ids, series, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
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
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func seriesIDs(series sim.TimeSeries) []string {
	if len(series) == 0 {
		return nil
	}
	ids := make([]string, 0, len(series[0].Values))
	for id := range series[0].Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
