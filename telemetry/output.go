package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// WindowRecord is one CSV row of periodic population/vegetation/failure
// stats — the observation API's non-JSON sibling — flattened for gocsv's
// struct-tag marshaling the way the teacher's WindowStats/PerfStatsCSV
// are (telemetry/stats.go, telemetry/perf.go).
type WindowRecord struct {
	Tick           uint64  `csv:"tick"`
	Population     int     `csv:"population"`
	HungerMean     float64 `csv:"hunger_mean"`
	ThirstMean     float64 `csv:"thirst_mean"`
	FearMean       float64 `csv:"fear_mean"`
	VegetationCells int    `csv:"vegetation_cells"`
	PendingEvents  int     `csv:"pending_regrowth_events"`
	AvgTickUs      int64   `csv:"avg_tick_us"`
}

// OutputManager writes a standing CSV trail of WindowRecords, one row
// per sampled tick window. Grounded on the teacher's OutputManager
// (telemetry/output.go): a single open file, header written once on the
// first record, gocsv.MarshalWithoutHeaders on every later one.
type OutputManager struct {
	file          *os.File
	headerWritten bool
}

// NewOutputManager creates the CSV file at path, making its parent
// directory first if needed. Returns (nil, nil) if path is empty, matching the teacher's
// "output disabled" convention for an empty directory.
func NewOutputManager(path string) (*OutputManager, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry csv: %w", err)
	}
	return &OutputManager{file: f}, nil
}

// WriteWindow appends one record to the CSV trail.
func (om *OutputManager) WriteWindow(rec WindowRecord) error {
	if om == nil {
		return nil
	}
	records := []WindowRecord{rec}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.file); err != nil {
			return fmt.Errorf("writing telemetry csv: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.file); err != nil {
		return fmt.Errorf("writing telemetry csv: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.file.Close()
}
