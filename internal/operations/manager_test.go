package operations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/dataprocessing"
	"aadhaarcli/pkg/contracts/domain"
)

func writeFragment(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		DateFormats:     config.DefaultDateFormats,
		MaxRowsPerFile:  config.ExcelMaxRows - 1,
		ErrorSampleSize: 20,
	}
}

func fullRegistry(t *testing.T, paths *config.Paths, pipeline config.PipelineConfig) *Registry {
	t.Helper()
	registry, err := BuildRegistry(
		NewDiscoverStep(paths, nil),
		NewCleanStep(dataprocessing.NewProcessor(pipeline, nil)),
		NewExportStep(paths, pipeline.MaxRowsPerFile, nil),
		NewSummarizeStep(paths.CleaningReportPath(), nil),
	)
	require.NoError(t, err)
	return registry
}

func TestManager_FullRun(t *testing.T) {
	paths := config.NewPaths(t.TempDir())

	writeFragment(t, paths.DatasetInputDir(domain.DatasetEnrolment), "jan.csv",
		"date,state,district,pincode,age_0_5,age_5_17,age_18_greater\n"+
			"01-03-2025,Bihar,Patna,800001,10,20,30\n"+
			"01-03-2025,orissa,cuttack,753001,1,2,3\n")
	writeFragment(t, paths.DatasetInputDir(domain.DatasetBiometric), "jan.csv",
		"date,state,district,pincode,bio_age_5_17,bio_age_17_\n"+
			"01-03-2025,Kerala,Kollam,691001,4,6\n")

	pipeline := testPipelineConfig()
	manager := NewManager(fullRegistry(t, paths, pipeline), nil, nil)

	datasets := []domain.Dataset{domain.DatasetEnrolment, domain.DatasetBiometric}
	state, err := manager.Run(context.Background(), datasets)
	require.NoError(t, err)

	assert.Equal(t, OperationStatusCompleted, state.Status())
	for _, id := range []string{StepIDDiscover, StepIDClean, StepIDExport, StepIDSummarize} {
		assert.Equal(t, StepStatusCompleted, state.StepStates()[id].GetStatus(), id)
	}

	// Cleaned part files and report on disk.
	assert.FileExists(t, filepath.Join(paths.CleanedDir, "enrolment_cleaned_part1.csv"))
	assert.FileExists(t, filepath.Join(paths.CleanedDir, "biometric_cleaned_part1.csv"))
	assert.FileExists(t, paths.CleaningReportPath())

	summary := state.Summary()
	require.NotNil(t, summary)
	assert.Equal(t, int64(66), summary.TypeTotals[domain.TransactionNewEnrollment])
	assert.Equal(t, int64(10), summary.TypeTotals[domain.TransactionBiometricUpdate])
	assert.Equal(t, 8, summary.TotalFinalRows())
}

func TestManager_FailsWhenDatasetHasNoInput(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	pipeline := testPipelineConfig()
	manager := NewManager(fullRegistry(t, paths, pipeline), nil, nil)

	state, err := manager.Run(context.Background(),
		[]domain.Dataset{domain.DatasetEnrolment})
	require.Error(t, err)

	assert.Equal(t, OperationStatusFailed, state.Status())
	assert.Equal(t, StepStatusFailed, state.StepStates()[StepIDClean].GetStatus())

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepIDClean, opErr.Step)
}

func TestManager_StopsAtFirstFailure(t *testing.T) {
	registry := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, registry.Register(newStubStep("first", func(context.Context, *OperationState) error {
		return boom
	})))
	executed := false
	require.NoError(t, registry.Register(newStubStep("second", func(context.Context, *OperationState) error {
		executed = true
		return nil
	})))

	manager := NewManager(registry, nil, nil)
	state, err := manager.Run(context.Background(), nil)

	assert.ErrorIs(t, err, boom)
	assert.False(t, executed)
	assert.Equal(t, OperationStatusFailed, state.Status())
	assert.Equal(t, StepStatusPending, state.StepStates()["second"].GetStatus())
}

func TestManager_Cancellation(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newStubStep("first", nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	manager := NewManager(registry, nil, nil)
	state, err := manager.Run(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OperationStatusCancelled, state.Status())
}

func TestManager_ReplacesStaleParts(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	// A leftover from a previous wider run must not survive.
	stale := filepath.Join(paths.CleanedDir, "enrolment_cleaned_part2.csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	writeFragment(t, paths.DatasetInputDir(domain.DatasetEnrolment), "jan.csv",
		"date,state,district,pincode,age_0_5\n"+
			"01-03-2025,Bihar,Patna,800001,10\n")

	pipeline := testPipelineConfig()
	manager := NewManager(fullRegistry(t, paths, pipeline), nil, nil)

	_, err := manager.Run(context.Background(), []domain.Dataset{domain.DatasetEnrolment})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(paths.CleanedDir, "enrolment_cleaned_part1.csv"))
	assert.NoFileExists(t, stale)
}
