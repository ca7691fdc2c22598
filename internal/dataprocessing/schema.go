package dataprocessing

import (
	"strconv"
	"strings"

	apperrors "aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

// RawRecord is a single long-form record after schema normalization. Field
// values are still surface strings; the canonicalizer resolves them.
type RawRecord struct {
	File     string
	Line     int
	Date     string
	State    string
	District string
	PinCode  string
	AgeGroup domain.AgeGroup
	Count    int64
}

// headerAliases maps lowercased source header variants onto canonical field
// keys. The portals have renamed columns across export batches.
var headerAliases = map[string]string{
	"date":          "date",
	"as_on_date":    "date",
	"report_date":   "date",
	"state":         "state",
	"state_name":    "state",
	"district":      "district",
	"district_name": "district",
	"pincode":       "pincode",
	"pin_code":      "pincode",
	"pin code":      "pincode",
	"age_group":     "age_group",
	"age group":     "age_group",
	"count":         "count",
}

// ageColumns maps wide per-band count columns onto the canonical age bands.
// Each dataset ships its own column names for the same bands.
var ageColumns = map[string]domain.AgeGroup{
	"age_0_5":        domain.AgeGroup0To5,
	"age_5_17":       domain.AgeGroup5To17,
	"age_18_greater": domain.AgeGroup18Plus,
	"bio_age_5_17":   domain.AgeGroup5To17,
	"bio_age_17_":    domain.AgeGroup18Plus,
	"demo_age_5_17":  domain.AgeGroup5To17,
	"demo_age_17_":   domain.AgeGroup18Plus,
}

// requiredFields must all be present in every fragment.
var requiredFields = []string{"date", "state", "district", "pincode"}

// ageColumn is one wide per-band count column resolved to its header position.
type ageColumn struct {
	idx  int
	band domain.AgeGroup
}

// columnLayout is the resolved position of each recognized column in one
// fragment's header. Age columns keep header order so melting is
// deterministic.
type columnLayout struct {
	fields map[string]int // canonical field key -> column index
	ages   []ageColumn
}

func (l columnLayout) isLong() bool {
	_, hasGroup := l.fields["age_group"]
	_, hasCount := l.fields["count"]
	return hasGroup && hasCount
}

// resolveLayout maps a fragment header onto the canonical schema. It returns
// a SchemaError naming the first missing required column.
func resolveLayout(file string, header []string) (columnLayout, *apperrors.RowError) {
	layout := columnLayout{fields: make(map[string]int)}

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerAliases[key]; ok {
			layout.fields[canonical] = i
			continue
		}
		if band, ok := ageColumns[key]; ok {
			layout.ages = append(layout.ages, ageColumn{idx: i, band: band})
		}
	}

	for _, field := range requiredFields {
		if _, ok := layout.fields[field]; !ok {
			return columnLayout{}, apperrors.NewSchemaError(file, field)
		}
	}

	// A fragment must carry counts either wide (per-band columns) or long
	// (age_group + count).
	if len(layout.ages) == 0 && !layout.isLong() {
		return columnLayout{}, apperrors.NewSchemaError(file, "age_group")
	}

	return layout, nil
}

// Normalize melts a raw table into long-form records. Wide fragments produce
// one record per non-empty age band; long fragments pass through row by row.
// Row-level failures go to the collector and the row (or band) is skipped.
func Normalize(table *RawTable, collector *apperrors.Collector) ([]RawRecord, *apperrors.RowError) {
	layout, schemaErr := resolveLayout(table.File, table.Header)
	if schemaErr != nil {
		return nil, schemaErr
	}

	records := make([]RawRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		base := RawRecord{
			File:     table.File,
			Line:     row.Line,
			Date:     cell(row.Cells, layout.fields["date"]),
			State:    cell(row.Cells, layout.fields["state"]),
			District: cell(row.Cells, layout.fields["district"]),
			PinCode:  cell(row.Cells, layout.fields["pincode"]),
		}

		if layout.isLong() {
			rec := base
			rec.AgeGroup = domain.AgeGroup(strings.TrimSpace(cell(row.Cells, layout.fields["age_group"])))
			count, err := parseCount(cell(row.Cells, layout.fields["count"]))
			if err != nil {
				collector.Add(apperrors.NewValidationError(table.File, row.Line,
					"count", cell(row.Cells, layout.fields["count"]), "count is not a non-negative integer"))
				continue
			}
			rec.Count = count
			records = append(records, rec)
			continue
		}

		for _, col := range layout.ages {
			raw := cell(row.Cells, col.idx)
			if strings.TrimSpace(raw) == "" {
				continue
			}
			count, err := parseCount(raw)
			if err != nil {
				collector.Add(apperrors.NewValidationError(table.File, row.Line,
					"count", raw, "count is not a non-negative integer"))
				continue
			}
			rec := base
			rec.AgeGroup = col.band
			rec.Count = count
			records = append(records, rec)
		}
	}

	return records, nil
}

// parseCount parses a count cell. Excel numeric cells render integral values
// with a trailing ".0", which is accepted.
func parseCount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
