package dataprocessing

import (
	"log/slog"

	"dtxcli/pkg/contracts/domain"
)

type groupKey struct {
	industryCode string
	industryName string
	year         int
}

type groupAcc struct {
	sum   float64
	count int
}

// Aggregate derives the industry-average table from cleaned records:
// one row per distinct (industry code, industry name, year), carrying the
// arithmetic mean of the non-missing index values in that group. A group
// whose values are all missing yields a nil average, never zero.
// Output order is unspecified; consumers sort explicitly.
func Aggregate(records []domain.EnterpriseRecord) []domain.IndustryAverage {
	groups := make(map[groupKey]*groupAcc)
	order := make([]groupKey, 0)

	for _, rec := range records {
		key := groupKey{rec.IndustryCode, rec.IndustryName, rec.Year}
		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{}
			groups[key] = acc
			order = append(order, key)
		}
		if rec.Index != nil {
			acc.sum += *rec.Index
			acc.count++
		}
	}

	averages := make([]domain.IndustryAverage, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		row := domain.IndustryAverage{
			IndustryCode: key.industryCode,
			IndustryName: key.industryName,
			Year:         key.year,
		}
		if acc.count > 0 {
			row.AvgIndex = domain.Float(acc.sum / float64(acc.count))
		}
		averages = append(averages, row)
	}

	slog.Debug("industry averages computed",
		slog.Int("records", len(records)),
		slog.Int("groups", len(averages)))

	return averages
}
