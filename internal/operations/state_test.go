package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/internal/dataprocessing"
	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/internal/files"
	"aadhaarcli/pkg/contracts/domain"
)

func TestOperationState_InputFiles(t *testing.T) {
	state := NewOperationState("run-1", []domain.Dataset{domain.DatasetEnrolment})

	// Not yet discovered.
	assert.Nil(t, state.InputFiles(domain.DatasetEnrolment))

	// Empty discovery is distinguishable from no discovery.
	state.SetInputFiles(domain.DatasetEnrolment, nil)
	assert.NotNil(t, state.InputFiles(domain.DatasetEnrolment))
	assert.Empty(t, state.InputFiles(domain.DatasetEnrolment))

	state.SetInputFiles(domain.DatasetEnrolment, []files.FileInfo{{Name: "a.csv"}})
	assert.Len(t, state.InputFiles(domain.DatasetEnrolment), 1)
}

func TestOperationState_ResultsFollowDatasetOrder(t *testing.T) {
	order := []domain.Dataset{domain.DatasetDemographic, domain.DatasetEnrolment}
	state := NewOperationState("run-1", order)

	state.SetResult(domain.DatasetEnrolment,
		&dataprocessing.DatasetResult{Dataset: domain.DatasetEnrolment})
	state.SetResult(domain.DatasetDemographic,
		&dataprocessing.DatasetResult{Dataset: domain.DatasetDemographic})

	results := state.Results()
	require.Len(t, results, 2)
	assert.Equal(t, domain.DatasetDemographic, results[0].Dataset)
	assert.Equal(t, domain.DatasetEnrolment, results[1].Dataset)
}

func TestOperationState_ErrorSamples(t *testing.T) {
	state := NewOperationState("run-1", []domain.Dataset{domain.DatasetBiometric})

	collector := apperrors.NewCollector(5)
	collector.Add(apperrors.NewFormatError("a.csv", 3, "sometime"))
	state.SetResult(domain.DatasetBiometric, &dataprocessing.DatasetResult{
		Dataset: domain.DatasetBiometric,
		Errors:  collector,
	})

	samples := state.ErrorSamples()
	require.Len(t, samples[domain.DatasetBiometric], 1)
	assert.Equal(t, apperrors.KindFormat, samples[domain.DatasetBiometric][0].Kind)
}

func TestOperationState_StepStateReuse(t *testing.T) {
	state := NewOperationState("run-1", nil)

	first := state.StepState("clean", "Clean datasets")
	second := state.StepState("clean", "Clean datasets")
	assert.Same(t, first, second)

	first.Start()
	assert.Equal(t, StepStatusActive, state.StepStates()["clean"].GetStatus())
}

func TestOperationState_Status(t *testing.T) {
	state := NewOperationState("run-1", nil)
	assert.Equal(t, OperationStatusPending, state.Status())

	state.SetStatus(OperationStatusRunning)
	assert.Equal(t, OperationStatusRunning, state.Status())
}
