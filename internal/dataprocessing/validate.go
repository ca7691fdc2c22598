package dataprocessing

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

// Validator checks canonicalized records against the field constraints and
// the configured reporting window.
type Validator struct {
	validate *validator.Validate
	from, to time.Time
}

// NewValidator creates a validator. Zero window bounds disable the
// corresponding window check.
func NewValidator(from, to time.Time) *Validator {
	return &Validator{
		validate: validator.New(),
		from:     from,
		to:       to,
	}
}

// ValidateRecord returns a row error for the first violated constraint, or
// nil for a valid record. Records carrying the INVALID state sentinel are
// accepted; the sentinel only exists under pass-through configuration.
func (v *Validator) ValidateRecord(rec domain.TransactionRecord) *apperrors.RowError {
	if err := v.validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewValidationError(rec.SourceFile, rec.SourceLine,
				fe.Field(), fmt.Sprintf("%v", fe.Value()),
				fmt.Sprintf("failed %q constraint", fe.Tag()))
		}
		return apperrors.NewValidationError(rec.SourceFile, rec.SourceLine,
			"", "", err.Error())
	}

	if rec.State != domain.InvalidState && !IsCanonicalState(rec.State) {
		return apperrors.NewValidationError(rec.SourceFile, rec.SourceLine,
			"state", rec.State, "state is not an official state or union territory")
	}

	if !v.from.IsZero() && rec.Date.Before(v.from) {
		return apperrors.NewValidationError(rec.SourceFile, rec.SourceLine,
			"date", rec.Date.Format("2006-01-02"), "date precedes the reporting window")
	}
	if !v.to.IsZero() && rec.Date.After(v.to) {
		return apperrors.NewValidationError(rec.SourceFile, rec.SourceLine,
			"date", rec.Date.Format("2006-01-02"), "date follows the reporting window")
	}

	return nil
}
