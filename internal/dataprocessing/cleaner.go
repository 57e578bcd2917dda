package dataprocessing

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	apperrors "dtxcli/internal/errors"
	"dtxcli/pkg/contracts/domain"
)

// Required source columns, exact Chinese headers as exported by the index
// spreadsheet. Order matters: SchemaError reports missing columns in this
// order, and it is the projection order of the cleaned table.
const (
	ColEnterpriseCode = "股票代码"
	ColEnterpriseName = "企业名称"
	ColYear           = "年份"
	ColCompositeIndex = "数字化转型综合指数"
	ColIndustryCode   = "行业代码"
	ColIndustryName   = "行业名称"
)

// RequiredColumns lists every column the Cleaner needs, in report order.
var RequiredColumns = []string{
	ColEnterpriseCode,
	ColEnterpriseName,
	ColYear,
	ColCompositeIndex,
	ColIndustryCode,
	ColIndustryName,
}

// dedupKey covers all six canonical fields, the index included, so only
// exact duplicates collapse.
type dedupKey struct {
	code, name                 string
	year                       int
	index                      float64
	indexValid                 bool
	industryCode, industryName string
}

// Clean validates and coerces the raw table into typed enterprise records:
//  1. schema check over the required columns, all missing names reported
//     together in a single SchemaError;
//  2. rows with any empty required cell are dropped;
//  3. the year must parse as an integral number, otherwise the row is dropped;
//  4. a non-numeric index keeps the row but marks the value missing, so the
//     identifying fields stay displayable while aggregates skip the value;
//  5. exact duplicates are removed.
//
// Input order is preserved; the raw table is never mutated.
func Clean(raw *RawTable) ([]domain.EnterpriseRecord, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if raw.ColumnIndex(col) == -1 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing)
	}

	codeIdx := raw.ColumnIndex(ColEnterpriseCode)
	nameIdx := raw.ColumnIndex(ColEnterpriseName)
	yearIdx := raw.ColumnIndex(ColYear)
	indexIdx := raw.ColumnIndex(ColCompositeIndex)
	indCodeIdx := raw.ColumnIndex(ColIndustryCode)
	indNameIdx := raw.ColumnIndex(ColIndustryName)

	records := make([]domain.EnterpriseRecord, 0, len(raw.Rows))
	seen := make(map[dedupKey]struct{}, len(raw.Rows))
	var droppedEmpty, droppedYear, droppedDup int

	for _, row := range raw.Rows {
		code := raw.Cell(row, codeIdx)
		name := raw.Cell(row, nameIdx)
		yearText := raw.Cell(row, yearIdx)
		indexText := raw.Cell(row, indexIdx)
		indCode := raw.Cell(row, indCodeIdx)
		indName := raw.Cell(row, indNameIdx)

		if code == "" || name == "" || yearText == "" || indexText == "" || indCode == "" || indName == "" {
			droppedEmpty++
			continue
		}

		year, ok := parseYear(yearText)
		if !ok {
			droppedYear++
			continue
		}

		index := parseIndex(indexText)

		key := dedupKey{
			code:         code,
			name:         name,
			year:         year,
			industryCode: indCode,
			industryName: indName,
		}
		if index != nil {
			key.index = *index
			key.indexValid = true
		}
		if _, dup := seen[key]; dup {
			droppedDup++
			continue
		}
		seen[key] = struct{}{}

		records = append(records, domain.EnterpriseRecord{
			Code:         code,
			Name:         name,
			Year:         year,
			Index:        index,
			IndustryCode: indCode,
			IndustryName: indName,
		})
	}

	slog.Info("table cleaned",
		slog.Int("raw_rows", len(raw.Rows)),
		slog.Int("kept", len(records)),
		slog.Int("dropped_empty", droppedEmpty),
		slog.Int("dropped_bad_year", droppedYear),
		slog.Int("dropped_duplicate", droppedDup))

	return records, nil
}

// parseYear accepts integral numeric forms such as "2020" or "2020.0".
// Non-numeric or fractional values are rejected.
func parseYear(s string) (int, bool) {
	v, err := strconv.ParseFloat(stripThousands(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

// parseIndex coerces the composite index to a float, nil when it cannot be
// parsed. Thousands separators are tolerated.
func parseIndex(s string) *float64 {
	v, err := strconv.ParseFloat(stripThousands(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func stripThousands(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
