package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Ticks: 2,
		Times: []float64{0.1, 0.2},
		Series: map[string][]float64{
			sim.SeriesKinetic:   {4, 2},
			sim.SeriesMaxSpeed:  {2, 1.5},
			sim.SeriesCentroidX: {80, 80},
			sim.SeriesCentroidY: {48, 49},
		},
		Metrics: map[string]float64{"energy": 1.5},
		Final: []lattice.Node{
			{X: 1, Y: 2, Locked: true},
			{X: 11, Y: 2.5, VX: 0.25},
		},
		Errors: []error{errors.New("tick 3 node (0,1): boom")},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 2
	events := []sim.PointerEvent{{Tick: 0, X: 5, Y: 5}}

	runID, err := st.Save("test", cfg, events, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" || meta.Ticks != 2 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}
	if meta.Config == nil || meta.Config.Cols != 2 {
		t.Error("config not stored")
	}
	if len(meta.Events) != 1 || meta.Events[0].X != 5 {
		t.Errorf("events not stored: %+v", meta.Events)
	}
	if len(meta.Errors) != 1 {
		t.Errorf("expected one stored error, got %v", meta.Errors)
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 2 || times[1] != 0.2 {
		t.Errorf("unexpected times %v", times)
	}
	if got := series[sim.SeriesCentroidY]; len(got) != 2 || got[1] != 49 {
		t.Errorf("unexpected centroid_y %v", got)
	}

	snap, err := st.LoadLattice(runID)
	if err != nil {
		t.Fatalf("load lattice failed: %v", err)
	}
	if snap.Cols != 2 || len(snap.Nodes) != 2 || !snap.Nodes[0].Locked || snap.Nodes[1].VX != 0.25 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save("a", config.DefaultConfig(), nil, testResult()); err != nil {
		t.Fatal(err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Name != "a" {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, _, err := st.LoadSeries("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := NewExportData("drape", config.DefaultConfig(), testResult())
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Ticks != 2 || decoded.Scheme != config.DefaultScheme {
		t.Errorf("unexpected export %+v", decoded)
	}
	if len(decoded.Series[sim.SeriesKinetic]) != 2 {
		t.Error("series missing from export")
	}
}
