package domain

// EnterpriseRecord represents one cleaned per-enterprise, per-year index
// observation. Index is nil when the source cell could not be coerced to a
// number; the row is still kept so identifying fields remain displayable.
type EnterpriseRecord struct {
	Code         string   `json:"code" csv:"Code"`
	Name         string   `json:"name" csv:"Name"`
	Year         int      `json:"year" csv:"Year"`
	Index        *float64 `json:"index" csv:"Index"`
	IndustryCode string   `json:"industry_code" csv:"IndustryCode"`
	IndustryName string   `json:"industry_name" csv:"IndustryName"`
}

// IndustryAverage is the derived industry-level series, one row per distinct
// (industry code, industry name, year). AvgIndex is nil when no enterprise in
// the group carries a usable index value for that year.
type IndustryAverage struct {
	IndustryCode string   `json:"industry_code" csv:"IndustryCode"`
	IndustryName string   `json:"industry_name" csv:"IndustryName"`
	Year         int      `json:"year" csv:"Year"`
	AvgIndex     *float64 `json:"avg_index" csv:"AvgIndex"`
}

// EntityRef identifies a selectable enterprise or industry. Code and name
// travel together so callers never re-encode them into a single display
// string that has to be parsed back apart.
type EntityRef struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Float returns a pointer to v, for building optional index values.
func Float(v float64) *float64 {
	return &v
}
