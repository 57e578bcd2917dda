package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtxcli/pkg/contracts/domain"
)

func sampleEnterprises() []domain.EnterpriseRecord {
	return []domain.EnterpriseRecord{
		{Code: "100020", Name: "深振业A", Year: 2021, Index: domain.Float(1.1), IndustryCode: "K70", IndustryName: "房地产业"},
		{Code: "000820", Name: "神雾节能", Year: 2020, Index: domain.Float(0.4), IndustryCode: "C33", IndustryName: "金属制品业"},
		{Code: "000820", Name: "神雾节能", Year: 2019, Index: domain.Float(0.3), IndustryCode: "C33", IndustryName: "金属制品业"},
		{Code: "600036", Name: "招商银行", Year: 2020, Index: domain.Float(2.5), IndustryCode: "J66", IndustryName: "货币金融服务"},
	}
}

func TestMatchEnterprises_CodeSubstring(t *testing.T) {
	// Both "000820" and "100020" contain "00"; result is sorted by name
	// then year.
	got := MatchEnterprises(sampleEnterprises(), "00", "")
	require.Len(t, got, 4)

	assert.Equal(t, "招商银行", got[0].Name)
	assert.Equal(t, "深振业A", got[1].Name)
	assert.Equal(t, 2019, got[2].Year)
	assert.Equal(t, 2020, got[3].Year)
	assert.Equal(t, "神雾节能", got[2].Name)
}

func TestMatchEnterprises_EmptyQueriesContributeNothing(t *testing.T) {
	assert.Empty(t, MatchEnterprises(sampleEnterprises(), "", ""))
}

func TestMatchEnterprises_CaseInsensitiveName(t *testing.T) {
	records := []domain.EnterpriseRecord{
		{Code: "300001", Name: "TCL科技", Year: 2020, IndustryCode: "C39", IndustryName: "电子设备制造"},
	}
	got := MatchEnterprises(records, "", "tcl")
	assert.Len(t, got, 1)
}

func TestMatchEnterprises_ORSemantics(t *testing.T) {
	records := sampleEnterprises()

	// match(t, "A", "") ∪ match(t, "", "B") must equal match(t, "A", "B")
	// as sets.
	codeOnly := MatchEnterprises(records, "600", "")
	nameOnly := MatchEnterprises(records, "", "神雾")
	both := MatchEnterprises(records, "600", "神雾")

	type recKey struct {
		code, name string
		year       int
	}
	key := func(r domain.EnterpriseRecord) recKey {
		return recKey{r.Code, r.Name, r.Year}
	}

	union := make(map[recKey]struct{})
	for _, rec := range codeOnly {
		union[key(rec)] = struct{}{}
	}
	for _, rec := range nameOnly {
		union[key(rec)] = struct{}{}
	}

	require.Len(t, both, len(union))
	for _, rec := range both {
		_, ok := union[key(rec)]
		assert.True(t, ok)
	}
}

func TestEnterpriseEntities_Dedupes(t *testing.T) {
	got := EnterpriseEntities(MatchEnterprises(sampleEnterprises(), "000820", ""))
	require.Len(t, got, 1)
	assert.Equal(t, domain.EntityRef{Code: "000820", Name: "神雾节能"}, got[0])
}

func TestMatchIndustries(t *testing.T) {
	rows := []domain.IndustryAverage{
		{IndustryCode: "J66", IndustryName: "货币金融服务", Year: 2020, AvgIndex: domain.Float(1.0)},
		{IndustryCode: "J67", IndustryName: "资本市场服务", Year: 2020, AvgIndex: domain.Float(1.5)},
		{IndustryCode: "C33", IndustryName: "金属制品业", Year: 2020, AvgIndex: domain.Float(0.4)},
	}

	got := MatchIndustries(rows, "J", "")
	require.Len(t, got, 2)
	assert.Equal(t, "货币金融服务", got[0].IndustryName)
	assert.Equal(t, "资本市场服务", got[1].IndustryName)

	byName := MatchIndustries(rows, "", "金")
	require.Len(t, byName, 2)

	entities := IndustryEntities(byName)
	assert.Equal(t, []domain.EntityRef{
		{Code: "J66", Name: "货币金融服务"},
		{Code: "C33", Name: "金属制品业"},
	}, entities)
}
