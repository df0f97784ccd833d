// Package session holds the single in-memory working state of the tool: the
// current dataset, where it came from, and the tax percentage in effect.
// There is deliberately no persistence; loading a new dataset replaces the
// value wholesale and discards any unsaved edits.
package session

import (
	"fmt"
	"sync"

	"quotereview/services"
)

// Source records where the current dataset came from.
type Source string

const (
	SourceNone       Source = ""
	SourceExtraction Source = "extraction"
	SourceManual     Source = "manual"
)

// State is a point-in-time snapshot of the session.
type State struct {
	Dataset    *services.Dataset
	Source     Source
	JobID      string
	TaxPercent float64
}

// HasDataset reports whether a non-empty dataset is loaded.
func (s State) HasDataset() bool {
	return s.Dataset != nil && len(s.Dataset.Rows) > 0
}

// Store guards the session state. The tool is single-user request/response,
// but the HTTP server still serves requests concurrently.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store with the given default tax percentage.
func NewStore(defaultTaxPercent float64) *Store {
	return &Store{state: State{TaxPercent: defaultTaxPercent}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Dataset = s.state.Dataset.Clone()
	return snap
}

// ReplaceDataset swaps in a new dataset wholesale, recording its source and
// (for extractions) the job that produced it. Any edits to the previously
// loaded table are discarded.
func (s *Store) ReplaceDataset(ds *services.Dataset, source Source, jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Dataset = ds.Clone()
	s.state.Source = source
	s.state.JobID = jobID
}

// Clear drops the current dataset and job state; the tax value is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Dataset = nil
	s.state.Source = SourceNone
	s.state.JobID = ""
}

// AddRow appends an empty row to the current dataset.
func (s *Store) AddRow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}
	row := make(map[string]string, len(s.state.Dataset.Columns))
	for _, col := range s.state.Dataset.Columns {
		row[col] = ""
	}
	s.state.Dataset.Rows = append(s.state.Dataset.Rows, row)
	return nil
}

// UpdateRow overwrites the given cells of one row. Unknown columns are
// ignored so a stale form cannot widen the table.
func (s *Store) UpdateRow(index int, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}
	if index < 0 || index >= len(s.state.Dataset.Rows) {
		return fmt.Errorf("row %d out of range", index)
	}

	known := make(map[string]bool, len(s.state.Dataset.Columns))
	for _, col := range s.state.Dataset.Columns {
		known[col] = true
	}
	for col, v := range values {
		if known[col] {
			s.state.Dataset.Rows[index][col] = v
		}
	}
	return nil
}

// DeleteRow removes one row from the current dataset.
func (s *Store) DeleteRow(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Dataset == nil {
		return fmt.Errorf("no dataset loaded")
	}
	if index < 0 || index >= len(s.state.Dataset.Rows) {
		return fmt.Errorf("row %d out of range", index)
	}
	s.state.Dataset.Rows = append(s.state.Dataset.Rows[:index], s.state.Dataset.Rows[index+1:]...)
	return nil
}

// SetTaxPercent updates the tax percentage; it must be >= 0.
func (s *Store) SetTaxPercent(v float64) error {
	if v < 0 {
		return fmt.Errorf("tax percent must be >= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TaxPercent = v
	return nil
}
