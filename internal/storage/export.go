package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/holodrive/internal/sweep"
)

type ExportData struct {
	Rig         string             `json:"rig"`
	Motors      []string           `json:"motors"`
	Translation []float64          `json:"translation"`
	Rotation    []float64          `json:"rotation"`
	ForceLocal  bool               `json:"force_local"`
	Steps       int                `json:"steps"`
	Yaws        []float64          `json:"yaws"`
	Velocities  [][]float64        `json:"velocities"`
	Commands    [][]float64        `json:"commands"`
	Metrics     map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, result *sweep.Result) error {
	data := ExportData{
		Rig:         meta.Rig,
		Motors:      result.Names,
		Translation: meta.Translation,
		Rotation:    meta.Rotation,
		ForceLocal:  meta.ForceLocal,
		Steps:       result.Steps,
		Yaws:        result.Yaws,
		Velocities:  result.Velocities,
		Commands:    result.Commands,
		Metrics:     result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
