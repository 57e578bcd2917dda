package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtxcli/pkg/contracts/domain"
)

func findAverage(t *testing.T, rows []domain.IndustryAverage, code string, year int) domain.IndustryAverage {
	t.Helper()
	for _, row := range rows {
		if row.IndustryCode == code && row.Year == year {
			return row
		}
	}
	t.Fatalf("no industry average for (%s, %d)", code, year)
	return domain.IndustryAverage{}
}

func TestAggregate_MeanExcludesMissing(t *testing.T) {
	// Acme carries an index in 2020 but a missing one in 2021; the other
	// enterprise trades in 2021 only. The 2021 group mean must exclude
	// Acme's missing value instead of treating it as zero.
	records := []domain.EnterpriseRecord{
		{Code: "000001", Name: "Acme", Year: 2020, Index: domain.Float(0.5), IndustryCode: "J1", IndustryName: "金融"},
		{Code: "000001", Name: "Acme", Year: 2021, Index: nil, IndustryCode: "J1", IndustryName: "金融"},
		{Code: "000002", Name: "Beta", Year: 2021, Index: domain.Float(0.7), IndustryCode: "J1", IndustryName: "金融"},
	}

	averages := Aggregate(records)
	require.Len(t, averages, 2)

	avg2020 := findAverage(t, averages, "J1", 2020)
	require.NotNil(t, avg2020.AvgIndex)
	assert.InDelta(t, 0.5, *avg2020.AvgIndex, 1e-9)

	avg2021 := findAverage(t, averages, "J1", 2021)
	require.NotNil(t, avg2021.AvgIndex)
	assert.InDelta(t, 0.7, *avg2021.AvgIndex, 1e-9)
}

func TestAggregate_AllMissingGroupIsMissingNotZero(t *testing.T) {
	records := []domain.EnterpriseRecord{
		{Code: "000001", Name: "Acme", Year: 2020, Index: nil, IndustryCode: "J1", IndustryName: "金融"},
		{Code: "000002", Name: "Beta", Year: 2020, Index: nil, IndustryCode: "J1", IndustryName: "金融"},
	}

	averages := Aggregate(records)
	require.Len(t, averages, 1)
	assert.Nil(t, averages[0].AvgIndex)
}

func TestAggregate_GroupKeyIsCodeNameYear(t *testing.T) {
	// Identical codes with different names stay separate groups.
	records := []domain.EnterpriseRecord{
		{Code: "000001", Name: "Acme", Year: 2020, Index: domain.Float(0.2), IndustryCode: "J1", IndustryName: "金融"},
		{Code: "000002", Name: "Beta", Year: 2020, Index: domain.Float(0.4), IndustryCode: "J1", IndustryName: "金融服务"},
		{Code: "000003", Name: "Ceta", Year: 2020, Index: domain.Float(0.6), IndustryCode: "J1", IndustryName: "金融"},
	}

	averages := Aggregate(records)
	require.Len(t, averages, 2)

	groups := map[string]float64{}
	for _, row := range averages {
		require.NotNil(t, row.AvgIndex)
		groups[row.IndustryName] = *row.AvgIndex
	}
	assert.InDelta(t, 0.4, groups["金融"], 1e-9)
	assert.InDelta(t, 0.4, groups["金融服务"], 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
