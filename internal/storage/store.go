// Package storage keeps sweep runs on disk: a metadata.json and a
// commands.csv per run directory.
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

	"github.com/pkg/errors"

	"github.com/san-kum/holodrive/internal/sweep"
	"github.com/san-kum/holodrive/internal/vecmath"
)

const (
	metadataFile = "metadata.json"
	commandsFile = "commands.csv"
)

var (
	ErrCorruptRun = errors.New("storage: corrupt run")
	ErrInvalidID  = errors.New("storage: invalid run id")
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
	ID          string             `json:"id"`
	Rig         string             `json:"rig"`
	Timestamp   time.Time          `json:"timestamp"`
	Motors      []string           `json:"motors"`
	Translation []float64          `json:"translation"`
	Rotation    []float64          `json:"rotation"`
	StartYaw    float64            `json:"start_yaw"`
	EndYaw      float64            `json:"end_yaw"`
	Steps       int                `json:"steps"`
	ForceLocal  bool               `json:"force_local"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewMetadata describes a sweep of rig without touching disk.
func NewMetadata(rig string, cfg sweep.Config, result *sweep.Result) RunMetadata {
	now := time.Now()
	return RunMetadata{
		ID:          fmt.Sprintf("%s_%d", runPrefix(rig), now.UnixNano()),
		Rig:         rig,
		Timestamp:   now,
		Motors:      result.Names,
		Translation: vecmath.Slice(cfg.Translation),
		Rotation:    vecmath.Slice(cfg.Rotation),
		StartYaw:    cfg.StartYaw,
		EndYaw:      cfg.EndYaw,
		Steps:       result.Steps,
		ForceLocal:  cfg.ForceLocal,
		Metrics:     result.Metrics,
	}
}

// runPrefix maps a rig name onto [A-Za-z0-9_-] so the run directory
// always sits directly under the store.
func runPrefix(rig string) string {
	prefix := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, rig)
	if prefix == "" {
		return "run"
	}
	return prefix
}

func validID(runID string) bool {
	return runID != "" && runID != "." && runID != ".." && filepath.Base(runID) == runID
}

// Save writes a run and returns its ID.
func (s *Store) Save(rig string, cfg sweep.Config, result *sweep.Result) (string, error) {
	meta := NewMetadata(rig, cfg, result)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, commandsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"yaw"}
	for _, name := range result.Names {
		header = append(header, "v_"+name)
	}
	for _, name := range result.Names {
		header = append(header, "c_"+name)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, yaw := range result.Yaws {
		row := []string{formatFloat(yaw)}
		for _, v := range result.Velocities[i] {
			row = append(row, formatFloat(v))
		}
		for _, c := range result.Commands[i] {
			row = append(row, formatFloat(c))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
	if !validID(runID) {
		return nil, errors.Wrapf(ErrInvalidID, "%q", runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(ErrCorruptRun, "%s: %v", runID, err)
	}

	return &meta, nil
}

// LoadResult rebuilds the per-sample rows of a saved run. Metrics come from
// its metadata.
func (s *Store) LoadResult(runID string) (*sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, commandsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptRun, "%s: %v", runID, err)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(ErrCorruptRun, "%s: missing header", runID)
	}

	names := motorNames(records[0])
	n := len(names)
	result := &sweep.Result{
		Names:      names,
		Yaws:       make([]float64, 0, len(records)-1),
		Velocities: make([][]float64, 0, len(records)-1),
		Commands:   make([][]float64, 0, len(records)-1),
		Metrics:    meta.Metrics,
	}

	for i, record := range records[1:] {
		if len(record) != 1+2*n {
			return nil, errors.Wrapf(ErrCorruptRun, "%s: row %d has %d fields", runID, i+1, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrCorruptRun, "%s: row %d: %v", runID, i+1, err)
			}
			vals[j] = v
		}
		result.Yaws = append(result.Yaws, vals[0])
		result.Velocities = append(result.Velocities, vals[1:1+n])
		result.Commands = append(result.Commands, vals[1+n:])
		result.Steps++
	}

	return result, nil
}

// LoadSeries returns a run's headings and one velocity column per motor.
func (s *Store) LoadSeries(runID string) ([]float64, [][]float64, error) {
	result, err := s.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	series := make([][]float64, len(result.Names))
	for i := range result.Names {
		series[i] = result.Series(i)
	}
	return result.Yaws, series, nil
}

func motorNames(header []string) []string {
	names := make([]string, 0, len(header)/2)
	for _, col := range header[1:] {
		if name, ok := strings.CutPrefix(col, "v_"); ok {
			names = append(names, name)
		}
	}
	return names
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
