package analytics

import (
	"sort"

	"dtxcli/pkg/contracts/domain"
)

// Align maps an irregularly-populated per-year series onto a reference year
// axis. Output position i corresponds to years[i]; a year absent from the
// series yields nil so charts render a visible gap instead of interpolating,
// and years outside the axis are dropped.
func Align(series map[int]float64, years []int) []*float64 {
	out := make([]*float64, len(years))
	for i, year := range years {
		if v, ok := series[year]; ok {
			out[i] = domain.Float(v)
		}
	}
	return out
}

// OverallMean computes the composite mean line across already-aligned
// series. Position i is the mean of the non-nil values at i; nil when every
// series has a gap there. Operating on aligned slices guarantees the
// composite shares the exact year axis of its inputs.
func OverallMean(aligned [][]*float64, axisLen int) []*float64 {
	out := make([]*float64, axisLen)
	for i := 0; i < axisLen; i++ {
		var sum float64
		var count int
		for _, series := range aligned {
			if i < len(series) && series[i] != nil {
				sum += *series[i]
				count++
			}
		}
		if count > 0 {
			out[i] = domain.Float(sum / float64(count))
		}
	}
	return out
}

// EnterpriseSeries folds records into a year→index map; rows with a missing
// index contribute no point, which aligns to a gap for that year.
func EnterpriseSeries(records []domain.EnterpriseRecord) map[int]float64 {
	series := make(map[int]float64, len(records))
	for _, rec := range records {
		if rec.Index != nil {
			series[rec.Year] = *rec.Index
		}
	}
	return series
}

// IndustrySeries folds industry-average rows into a year→average map,
// skipping groups with no usable value.
func IndustrySeries(rows []domain.IndustryAverage) map[int]float64 {
	series := make(map[int]float64, len(rows))
	for _, row := range rows {
		if row.AvgIndex != nil {
			series[row.Year] = *row.AvgIndex
		}
	}
	return series
}

// RecordYears returns the sorted distinct years the records cover. Years
// whose index value is missing still count: the row exists, so the axis
// shows it as a gap rather than omitting the year.
func RecordYears(records []domain.EnterpriseRecord) []int {
	seen := make(map[int]struct{}, len(records))
	for _, rec := range records {
		seen[rec.Year] = struct{}{}
	}
	return sortedYears(seen)
}

// RowYears returns the sorted distinct years the industry rows cover,
// all-missing groups included.
func RowYears(rows []domain.IndustryAverage) []int {
	seen := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		seen[row.Year] = struct{}{}
	}
	return sortedYears(seen)
}

func sortedYears(seen map[int]struct{}) []int {
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
