package domain

import "fmt"

// Dataset identifies one of the three raw Aadhaar datasets delivered by the
// upstream portal. Each dataset maps to a single transaction type.
type Dataset string

const (
	DatasetEnrolment   Dataset = "enrolment"
	DatasetBiometric   Dataset = "biometric"
	DatasetDemographic Dataset = "demographic"
)

// Datasets lists all datasets in processing order.
var Datasets = []Dataset{DatasetEnrolment, DatasetBiometric, DatasetDemographic}

// ParseDataset converts a string into a Dataset.
func ParseDataset(s string) (Dataset, error) {
	switch Dataset(s) {
	case DatasetEnrolment, DatasetBiometric, DatasetDemographic:
		return Dataset(s), nil
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

// TransactionType returns the transaction type recorded by this dataset.
func (d Dataset) TransactionType() TransactionType {
	switch d {
	case DatasetBiometric:
		return TransactionBiometricUpdate
	case DatasetDemographic:
		return TransactionDemographicUpdate
	default:
		return TransactionNewEnrollment
	}
}

// DisplayName returns the dataset name used in the cleaning report.
func (d Dataset) DisplayName() string {
	switch d {
	case DatasetBiometric:
		return "BIOMETRIC"
	case DatasetDemographic:
		return "DEMOGRAPHIC"
	default:
		return "ENROLMENT"
	}
}

// OutputBase returns the base name for cleaned part files, e.g.
// "biometric_cleaned" producing biometric_cleaned_part1.csv.
func (d Dataset) OutputBase() string {
	return string(d) + "_cleaned"
}
