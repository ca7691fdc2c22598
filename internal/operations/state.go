package operations

import (
	"sync"
	"time"

	"aadhaarcli/internal/dataprocessing"
	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/internal/files"
	"aadhaarcli/pkg/contracts/domain"
)

// OperationState is the shared state of one pipeline run, passed from step to
// step. All accessors are safe for concurrent use; the clean step writes
// per-dataset results from concurrent goroutines.
type OperationState struct {
	mu sync.RWMutex

	runID     string
	status    OperationStatus
	startedAt time.Time

	datasets   []domain.Dataset
	inputFiles map[domain.Dataset][]files.FileInfo
	results    map[domain.Dataset]*dataprocessing.DatasetResult
	parts      map[domain.Dataset][]domain.PartFileInfo
	summary    *domain.RunSummary

	steps map[string]*StepState
}

// NewOperationState creates the state for a run over the given datasets.
func NewOperationState(runID string, datasets []domain.Dataset) *OperationState {
	return &OperationState{
		runID:      runID,
		status:     OperationStatusPending,
		startedAt:  time.Now(),
		datasets:   datasets,
		inputFiles: make(map[domain.Dataset][]files.FileInfo),
		results:    make(map[domain.Dataset]*dataprocessing.DatasetResult),
		parts:      make(map[domain.Dataset][]domain.PartFileInfo),
		steps:      make(map[string]*StepState),
	}
}

// RunID returns the run identifier.
func (s *OperationState) RunID() string {
	return s.runID
}

// StartedAt returns when the run began.
func (s *OperationState) StartedAt() time.Time {
	return s.startedAt
}

// Datasets returns the datasets selected for this run.
func (s *OperationState) Datasets() []domain.Dataset {
	out := make([]domain.Dataset, len(s.datasets))
	copy(out, s.datasets)
	return out
}

// SetStatus updates the overall run status.
func (s *OperationState) SetStatus(status OperationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Status returns the overall run status.
func (s *OperationState) Status() OperationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetInputFiles records the discovered fragments for one dataset. An empty
// discovery is stored as an empty slice so later steps can tell "discovered
// nothing" from "not discovered yet".
func (s *OperationState) SetInputFiles(ds domain.Dataset, found []files.FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if found == nil {
		found = []files.FileInfo{}
	}
	s.inputFiles[ds] = found
}

// InputFiles returns the discovered fragments for one dataset.
func (s *OperationState) InputFiles(ds domain.Dataset) []files.FileInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputFiles[ds]
}

// SetResult records the cleaning result for one dataset.
func (s *OperationState) SetResult(ds domain.Dataset, result *dataprocessing.DatasetResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[ds] = result
}

// Result returns the cleaning result for one dataset.
func (s *OperationState) Result(ds domain.Dataset) *dataprocessing.DatasetResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[ds]
}

// Results returns all dataset results in the run's dataset order.
func (s *OperationState) Results() []*dataprocessing.DatasetResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*dataprocessing.DatasetResult, 0, len(s.datasets))
	for _, ds := range s.datasets {
		if result, ok := s.results[ds]; ok {
			out = append(out, result)
		}
	}
	return out
}

// SetParts records the written part files for one dataset.
func (s *OperationState) SetParts(ds domain.Dataset, parts []domain.PartFileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[ds] = parts
}

// Parts returns the written part files for one dataset.
func (s *OperationState) Parts(ds domain.Dataset) []domain.PartFileInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parts[ds]
}

// SetSummary stores the final run summary.
func (s *OperationState) SetSummary(summary *domain.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

// Summary returns the final run summary, or nil before summarization.
func (s *OperationState) Summary() *domain.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// ErrorSamples collects the retained row-error samples per dataset, for the
// cleaning report.
func (s *OperationState) ErrorSamples() map[domain.Dataset][]*apperrors.RowError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	samples := make(map[domain.Dataset][]*apperrors.RowError, len(s.results))
	for ds, result := range s.results {
		if result != nil && result.Errors != nil {
			samples[ds] = result.Errors.Samples()
		}
	}
	return samples
}

// StepState returns the runtime state for a step, creating it on first use.
func (s *OperationState) StepState(id, name string) *StepState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.steps[id]; ok {
		return existing
	}
	state := NewStepState(id, name)
	s.steps[id] = state
	return state
}

// StepStates returns a snapshot of all step states.
func (s *OperationState) StepStates() map[string]*StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*StepState, len(s.steps))
	for id, state := range s.steps {
		out[id] = state
	}
	return out
}
