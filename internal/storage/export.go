package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/sim"
)

type ExportData struct {
	Name    string               `json:"name"`
	Scheme  string               `json:"scheme"`
	Dt      float64              `json:"dt"`
	Ticks   int                  `json:"ticks"`
	Config  *config.Config       `json:"config"`
	Times   []float64            `json:"times"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
	Final   []lattice.Node       `json:"final"`
}

func NewExportData(name string, cfg *config.Config, result *sim.Result) ExportData {
	data := ExportData{
		Name:    name,
		Scheme:  cfg.Scheme,
		Dt:      cfg.DeltaTime,
		Ticks:   result.Ticks,
		Config:  cfg,
		Times:   result.Times,
		Series:  make(map[string][]float64, len(result.Series)),
		Metrics: make(map[string]float64, len(result.Metrics)),
		Final:   make([]lattice.Node, len(result.Final)),
	}

	for key, values := range result.Series {
		clean := make([]float64, len(values))
		for i, v := range values {
			clean[i] = finite(v)
		}
		data.Series[key] = clean
	}
	for key, v := range result.Metrics {
		data.Metrics[key] = finite(v)
	}
	for i, n := range result.Final {
		data.Final[i] = lattice.Node{
			X: finite(n.X), Y: finite(n.Y),
			VX: finite(n.VX), VY: finite(n.VY),
			Locked: n.Locked,
		}
	}

	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes data to path, or to stdout when path is "-".
func ExportJSON(path string, data ExportData) error {
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
