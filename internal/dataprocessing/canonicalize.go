package dataprocessing

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

// Canonicalizer resolves surface field values into their canonical form:
// dates onto ISO layout, state names onto official names, districts onto
// Title Case, pincodes onto six zero-padded digits.
type Canonicalizer struct {
	dateFormats        []string
	passThroughUnknown bool
	titleCaser         cases.Caser
}

// NewCanonicalizer creates a canonicalizer probing the given date layouts in
// order. When passThroughUnknown is set, unresolvable state names become the
// INVALID sentinel instead of rejecting the row.
func NewCanonicalizer(dateFormats []string, passThroughUnknown bool) *Canonicalizer {
	return &Canonicalizer{
		dateFormats:        dateFormats,
		passThroughUnknown: passThroughUnknown,
		titleCaser:         cases.Title(language.English),
	}
}

// Canonicalize converts one normalized raw record into a transaction record
// of the given type. A non-nil row error means the record must be skipped
// (unless pass-through is configured, in which case the error is nil and the
// state carries the INVALID sentinel).
func (c *Canonicalizer) Canonicalize(raw RawRecord, txType domain.TransactionType) (domain.TransactionRecord, *apperrors.RowError) {
	date, ok := c.ParseDate(raw.Date)
	if !ok {
		return domain.TransactionRecord{}, apperrors.NewFormatError(raw.File, raw.Line, raw.Date)
	}

	state, ok := ResolveState(raw.State)
	if !ok {
		if !c.passThroughUnknown {
			return domain.TransactionRecord{}, apperrors.NewUnknownStateError(raw.File, raw.Line, raw.State)
		}
		state = domain.InvalidState
	}

	return domain.TransactionRecord{
		Date:            date,
		State:           state,
		District:        c.CanonicalDistrict(raw.District),
		PinCode:         CanonicalPinCode(raw.PinCode),
		AgeGroup:        raw.AgeGroup,
		TransactionType: txType,
		Count:           raw.Count,
		SourceFile:      raw.File,
		SourceLine:      raw.Line,
	}, nil
}

// ParseDate probes the configured layouts in order; the first parse wins.
func (c *Canonicalizer) ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range c.dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanonicalDistrict trims and Title-Cases a district name.
func (c *Canonicalizer) CanonicalDistrict(raw string) string {
	return c.titleCaser.String(strings.TrimSpace(raw))
}

// CanonicalPinCode zero-pads a pincode to six digits. Excel numeric cells
// render integral pincodes with a trailing ".0", which is stripped first.
// Whether the result is actually six digits is the validator's call.
func CanonicalPinCode(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	for len(s) < 6 && s != "" {
		s = "0" + s
	}
	return s
}
