package domain

// Series pairs an ordered year axis with values aligned to it, ready for
// direct hand-off to a charting surface. A nil value marks a gap for that
// year, distinct from zero.
type Series struct {
	Years  []int      `json:"years"`
	Values []*float64 `json:"values"`
}

// LabeledSeries is a Series tagged with the entity it belongs to.
type LabeledSeries struct {
	Entity EntityRef `json:"entity"`
	Series
}

// EnterpriseGroup holds the yearly records of one matched enterprise,
// sorted by year ascending.
type EnterpriseGroup struct {
	Entity  EntityRef          `json:"entity"`
	Records []EnterpriseRecord `json:"records"`
}

// EnterpriseLookup is the result of an enterprise code/name lookup.
type EnterpriseLookup struct {
	Candidates []EntityRef       `json:"candidates"`
	Groups     []EnterpriseGroup `json:"groups"`
}

// IndustryGroup holds the yearly average rows of one matched industry,
// sorted by year ascending.
type IndustryGroup struct {
	Entity EntityRef         `json:"entity"`
	Rows   []IndustryAverage `json:"rows"`
}

// IndustryLookup is the result of an industry code/name lookup.
type IndustryLookup struct {
	Candidates []EntityRef     `json:"candidates"`
	Groups     []IndustryGroup `json:"groups"`
}

// EnterpriseTrend carries one enterprise's index series over its own year
// axis, paired with its industry's average series aligned to the same axis.
type EnterpriseTrend struct {
	Entity      EntityRef `json:"entity"`
	Industry    EntityRef `json:"industry"`
	Years       []int     `json:"years"`
	Enterprise  Series    `json:"enterprise"`
	IndustryAvg Series    `json:"industry_avg"`
}

// IndustryTrend carries one industry's average series over its own years.
type IndustryTrend struct {
	Entity EntityRef `json:"entity"`
	Trend  Series    `json:"trend"`
}

// IndustryComparison is the multi-industry comparison result: every series,
// including the composite mean line, shares the same year axis.
type IndustryComparison struct {
	Years     []int           `json:"years"`
	Series    []LabeledSeries `json:"series"`
	Composite Series          `json:"composite"`
}

// DatasetOverview summarizes the loaded dataset.
type DatasetOverview struct {
	EnterpriseCount int `json:"enterprise_count"`
	IndustryCount   int `json:"industry_count"`
	RecordCount     int `json:"record_count"`
	MinYear         int `json:"min_year"`
	MaxYear         int `json:"max_year"`
}
