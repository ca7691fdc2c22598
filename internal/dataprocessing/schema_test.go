package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

func TestNormalize_WideEnrolment(t *testing.T) {
	table := &RawTable{
		File:   "enrolment.csv",
		Header: []string{"date", "state", "district", "pincode", "age_0_5", "age_5_17", "age_18_greater"},
		Rows: []RawRow{
			{Line: 2, Cells: []string{"01-03-2025", "Bihar", "Patna", "800001", "10", "20", "30"}},
			{Line: 3, Cells: []string{"02-03-2025", "Bihar", "Patna", "800001", "", "5", ""}},
		},
	}

	collector := apperrors.NewCollector(10)
	records, schemaErr := Normalize(table, collector)
	require.Nil(t, schemaErr)

	// Three bands on the first row, one non-empty band on the second.
	require.Len(t, records, 4)
	assert.Equal(t, domain.AgeGroup0To5, records[0].AgeGroup)
	assert.Equal(t, int64(10), records[0].Count)
	assert.Equal(t, domain.AgeGroup5To17, records[1].AgeGroup)
	assert.Equal(t, domain.AgeGroup18Plus, records[2].AgeGroup)
	assert.Equal(t, domain.AgeGroup5To17, records[3].AgeGroup)
	assert.Equal(t, int64(5), records[3].Count)
	assert.Equal(t, 3, records[3].Line)
}

func TestNormalize_WideBiometricBands(t *testing.T) {
	table := &RawTable{
		File:   "biometric.csv",
		Header: []string{"date", "state", "district", "pincode", "bio_age_5_17", "bio_age_17_"},
		Rows: []RawRow{
			{Line: 2, Cells: []string{"01-03-2025", "Bihar", "Patna", "800001", "7", "9"}},
		},
	}

	records, schemaErr := Normalize(table, apperrors.NewCollector(10))
	require.Nil(t, schemaErr)
	require.Len(t, records, 2)
	assert.Equal(t, domain.AgeGroup5To17, records[0].AgeGroup)
	assert.Equal(t, domain.AgeGroup18Plus, records[1].AgeGroup)
}

func TestNormalize_LongSchema(t *testing.T) {
	table := &RawTable{
		File:   "long.csv",
		Header: []string{"Date", "State", "District", "Pin Code", "Age Group", "Count"},
		Rows: []RawRow{
			{Line: 2, Cells: []string{"2025-03-01", "Odisha", "Cuttack", "753001", "18+", "42"}},
		},
	}

	records, schemaErr := Normalize(table, apperrors.NewCollector(10))
	require.Nil(t, schemaErr)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AgeGroup18Plus, records[0].AgeGroup)
	assert.Equal(t, int64(42), records[0].Count)
}

func TestNormalize_MissingColumn(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		missing string
	}{
		{
			name:    "no pincode",
			header:  []string{"date", "state", "district", "age_0_5"},
			missing: "pincode",
		},
		{
			name:    "no count columns",
			header:  []string{"date", "state", "district", "pincode"},
			missing: "age_group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &RawTable{File: "bad.csv", Header: tt.header}
			_, schemaErr := Normalize(table, apperrors.NewCollector(10))
			require.NotNil(t, schemaErr)
			assert.Equal(t, apperrors.KindSchema, schemaErr.Kind)
			assert.Equal(t, tt.missing, schemaErr.Field)
		})
	}
}

func TestNormalize_BadCountSkipsBand(t *testing.T) {
	table := &RawTable{
		File:   "enrolment.csv",
		Header: []string{"date", "state", "district", "pincode", "age_0_5", "age_5_17"},
		Rows: []RawRow{
			{Line: 2, Cells: []string{"01-03-2025", "Bihar", "Patna", "800001", "abc", "20"}},
		},
	}

	collector := apperrors.NewCollector(10)
	records, schemaErr := Normalize(table, collector)
	require.Nil(t, schemaErr)
	require.Len(t, records, 1)
	assert.Equal(t, int64(20), records[0].Count)
	assert.Equal(t, 1, collector.Count(apperrors.KindValidation))
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: " 42 ", want: 42},
		{in: "42.0", want: 42},
		{in: "1,234", want: 1234},
		{in: "abc", wantErr: true},
		{in: "4.2", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseCount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
