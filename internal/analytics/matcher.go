// Package analytics implements the query primitives that run over the
// cleaned dataset: fuzzy code/name matching and year-axis alignment.
// Every function is pure; an empty result is data, never an error.
package analytics

import (
	"sort"
	"strings"

	"dtxcli/pkg/contracts/domain"
)

// matches reports whether query is a non-empty case-insensitive substring
// of value. An empty query never matches, so it contributes no rows to the
// OR across the code and name clauses.
func matches(value, query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

// MatchEnterprises returns the records whose code contains codeQuery or
// whose name contains nameQuery, sorted by (name, year), name ties broken
// by code for determinism.
func MatchEnterprises(records []domain.EnterpriseRecord, codeQuery, nameQuery string) []domain.EnterpriseRecord {
	var out []domain.EnterpriseRecord
	for _, rec := range records {
		if matches(rec.Code, codeQuery) || matches(rec.Name, nameQuery) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// MatchIndustries is the industry-average counterpart of MatchEnterprises.
func MatchIndustries(rows []domain.IndustryAverage, codeQuery, nameQuery string) []domain.IndustryAverage {
	var out []domain.IndustryAverage
	for _, row := range rows {
		if matches(row.IndustryCode, codeQuery) || matches(row.IndustryName, nameQuery) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IndustryName != out[j].IndustryName {
			return out[i].IndustryName < out[j].IndustryName
		}
		if out[i].IndustryCode != out[j].IndustryCode {
			return out[i].IndustryCode < out[j].IndustryCode
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// EnterpriseEntities reduces matched records to distinct (code, name)
// selection candidates, preserving match order.
func EnterpriseEntities(records []domain.EnterpriseRecord) []domain.EntityRef {
	seen := make(map[domain.EntityRef]struct{}, len(records))
	var out []domain.EntityRef
	for _, rec := range records {
		ref := domain.EntityRef{Code: rec.Code, Name: rec.Name}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// IndustryEntities reduces matched industry rows to distinct (code, name)
// selection candidates, preserving match order.
func IndustryEntities(rows []domain.IndustryAverage) []domain.EntityRef {
	seen := make(map[domain.EntityRef]struct{}, len(rows))
	var out []domain.EntityRef
	for _, row := range rows {
		ref := domain.EntityRef{Code: row.IndustryCode, Name: row.IndustryName}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
