package domain

import (
	"fmt"
	"time"
)

// AgeGroup is the canonical age band of a transaction record.
type AgeGroup string

const (
	AgeGroup0To5   AgeGroup = "0-5"
	AgeGroup5To17  AgeGroup = "5-17"
	AgeGroup18Plus AgeGroup = "18+"
)

// AgeGroups lists all canonical age bands in reporting order.
var AgeGroups = []AgeGroup{AgeGroup0To5, AgeGroup5To17, AgeGroup18Plus}

// IsValid reports whether the age group is one of the canonical bands.
func (a AgeGroup) IsValid() bool {
	switch a {
	case AgeGroup0To5, AgeGroup5To17, AgeGroup18Plus:
		return true
	}
	return false
}

// TransactionType is the kind of Aadhaar transaction a record counts.
type TransactionType string

const (
	TransactionBiometricUpdate   TransactionType = "Biometric Update"
	TransactionDemographicUpdate TransactionType = "Demographic Update"
	TransactionNewEnrollment     TransactionType = "New Enrollment"
)

// TransactionTypes lists all transaction types in reporting order.
var TransactionTypes = []TransactionType{
	TransactionBiometricUpdate,
	TransactionDemographicUpdate,
	TransactionNewEnrollment,
}

// IsValid reports whether the transaction type is one of the canonical kinds.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionBiometricUpdate, TransactionDemographicUpdate, TransactionNewEnrollment:
		return true
	}
	return false
}

// InvalidState is the sentinel written in place of a state name that could not
// be resolved when unknown states are configured to pass through.
const InvalidState = "INVALID"

// TransactionRecord is a single consolidated row of the cleaned dataset:
// the number of transactions of one type for one age band in one
// district/pincode on one day.
type TransactionRecord struct {
	Date            time.Time       `json:"date" validate:"required"`
	State           string          `json:"state" validate:"required"`
	District        string          `json:"district" validate:"required"`
	PinCode         string          `json:"pin_code" validate:"required,len=6,numeric"`
	AgeGroup        AgeGroup        `json:"age_group" validate:"required,oneof=0-5 5-17 18+"`
	TransactionType TransactionType `json:"transaction_type" validate:"required,oneof='Biometric Update' 'Demographic Update' 'New Enrollment'"`
	Count           int64           `json:"count" validate:"gte=0"`

	// Provenance for error reporting. Not part of record identity.
	SourceFile string `json:"-"`
	SourceLine int    `json:"-"`
}

// Key returns the identity of the record over all canonical fields.
// Two records are exact duplicates when their keys are equal.
func (r TransactionRecord) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d",
		r.Date.Format("2006-01-02"),
		r.State,
		r.District,
		r.PinCode,
		r.AgeGroup,
		r.TransactionType,
		r.Count,
	)
}

// Less orders records by Date, then State, then District. Used for the
// time-series sort of the consolidated output.
func (r TransactionRecord) Less(other TransactionRecord) bool {
	if !r.Date.Equal(other.Date) {
		return r.Date.Before(other.Date)
	}
	if r.State != other.State {
		return r.State < other.State
	}
	return r.District < other.District
}

// CSVRow renders the record as a row of the consolidated CSV output.
func (r TransactionRecord) CSVRow() []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.State,
		r.District,
		r.PinCode,
		string(r.AgeGroup),
		string(r.TransactionType),
		fmt.Sprintf("%d", r.Count),
	}
}

// CSVHeader is the column set of the consolidated output.
var CSVHeader = []string{"Date", "State", "District", "Pin Code", "Age Group", "Transaction Type", "Count"}
