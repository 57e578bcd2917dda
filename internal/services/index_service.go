package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"dtxcli/internal/analytics"
	"dtxcli/internal/dataset"
	apperrors "dtxcli/internal/errors"
	"dtxcli/pkg/contracts/domain"
)

// IndexService answers enterprise and industry index queries over the
// memoized dataset. Every method is read-only; an empty match is a valid
// result, not an error.
type IndexService struct {
	provider dataset.Provider
	logger   *slog.Logger
}

// NewIndexService creates an index query service.
func NewIndexService(provider dataset.Provider, logger *slog.Logger) *IndexService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexService{
		provider: provider,
		logger:   logger.With(slog.String("component", "index_service")),
	}
}

// Overview summarizes the loaded dataset for the landing view.
func (s *IndexService) Overview(ctx context.Context) (*domain.DatasetOverview, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("overview").Inc()

	overview := &domain.DatasetOverview{
		RecordCount: len(snap.Enterprises),
	}

	enterprises := make(map[domain.EntityRef]struct{})
	industries := make(map[domain.EntityRef]struct{})
	for i, rec := range snap.Enterprises {
		enterprises[domain.EntityRef{Code: rec.Code, Name: rec.Name}] = struct{}{}
		industries[domain.EntityRef{Code: rec.IndustryCode, Name: rec.IndustryName}] = struct{}{}
		if i == 0 || rec.Year < overview.MinYear {
			overview.MinYear = rec.Year
		}
		if i == 0 || rec.Year > overview.MaxYear {
			overview.MaxYear = rec.Year
		}
	}
	overview.EnterpriseCount = len(enterprises)
	overview.IndustryCount = len(industries)

	return overview, nil
}

// LookupEnterprise matches enterprises by code/name substring (OR
// semantics) and returns the matched records grouped by entity, with a
// distinct candidate list for selection UIs.
func (s *IndexService) LookupEnterprise(ctx context.Context, codeQuery, nameQuery string) (*domain.EnterpriseLookup, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("enterprise_lookup").Inc()

	matched := analytics.MatchEnterprises(snap.Enterprises, codeQuery, nameQuery)
	candidates := analytics.EnterpriseEntities(matched)

	byEntity := make(map[domain.EntityRef][]domain.EnterpriseRecord, len(candidates))
	for _, rec := range matched {
		ref := domain.EntityRef{Code: rec.Code, Name: rec.Name}
		byEntity[ref] = append(byEntity[ref], rec)
	}

	groups := make([]domain.EnterpriseGroup, 0, len(candidates))
	for _, ref := range candidates {
		records := byEntity[ref]
		sort.SliceStable(records, func(i, j int) bool { return records[i].Year < records[j].Year })
		groups = append(groups, domain.EnterpriseGroup{Entity: ref, Records: records})
	}

	s.logger.DebugContext(ctx, "enterprise lookup",
		slog.String("code_query", codeQuery),
		slog.String("name_query", nameQuery),
		slog.Int("matched_rows", len(matched)),
		slog.Int("candidates", len(candidates)))

	return &domain.EnterpriseLookup{Candidates: candidates, Groups: groups}, nil
}

// EnterpriseTrend builds the chart data for one exact enterprise: its index
// series over its own years plus the industry average aligned to the same
// axis, so the two lines never drift apart on the year axis.
func (s *IndexService) EnterpriseTrend(ctx context.Context, code, name string) (*domain.EnterpriseTrend, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("enterprise_trend").Inc()

	var records []domain.EnterpriseRecord
	for _, rec := range snap.Enterprises {
		if rec.Code == code && rec.Name == name {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("enterprise %s (%s) not found", name, code))
	}

	industry := domain.EntityRef{Code: records[0].IndustryCode, Name: records[0].IndustryName}

	var industryRows []domain.IndustryAverage
	for _, row := range snap.Industries {
		if row.IndustryCode == industry.Code && row.IndustryName == industry.Name {
			industryRows = append(industryRows, row)
		}
	}

	years := analytics.RecordYears(records)
	enterpriseValues := analytics.Align(analytics.EnterpriseSeries(records), years)
	industryValues := analytics.Align(analytics.IndustrySeries(industryRows), years)

	return &domain.EnterpriseTrend{
		Entity:      domain.EntityRef{Code: code, Name: name},
		Industry:    industry,
		Years:       years,
		Enterprise:  domain.Series{Years: years, Values: enterpriseValues},
		IndustryAvg: domain.Series{Years: years, Values: industryValues},
	}, nil
}

// LookupIndustry matches industries by code/name substring and returns the
// matched average rows grouped by industry.
func (s *IndexService) LookupIndustry(ctx context.Context, codeQuery, nameQuery string) (*domain.IndustryLookup, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("industry_lookup").Inc()

	matched := analytics.MatchIndustries(snap.Industries, codeQuery, nameQuery)
	candidates := analytics.IndustryEntities(matched)

	byEntity := make(map[domain.EntityRef][]domain.IndustryAverage, len(candidates))
	for _, row := range matched {
		ref := domain.EntityRef{Code: row.IndustryCode, Name: row.IndustryName}
		byEntity[ref] = append(byEntity[ref], row)
	}

	groups := make([]domain.IndustryGroup, 0, len(candidates))
	for _, ref := range candidates {
		rows := byEntity[ref]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
		groups = append(groups, domain.IndustryGroup{Entity: ref, Rows: rows})
	}

	s.logger.DebugContext(ctx, "industry lookup",
		slog.String("code_query", codeQuery),
		slog.String("name_query", nameQuery),
		slog.Int("matched_rows", len(matched)),
		slog.Int("candidates", len(candidates)))

	return &domain.IndustryLookup{Candidates: candidates, Groups: groups}, nil
}

// IndustryTrend builds the average-index series for one exact industry.
func (s *IndexService) IndustryTrend(ctx context.Context, code, name string) (*domain.IndustryTrend, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("industry_trend").Inc()

	var rows []domain.IndustryAverage
	for _, row := range snap.Industries {
		if row.IndustryCode == code && row.IndustryName == name {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("industry %s (%s) not found", name, code))
	}

	years := analytics.RowYears(rows)
	values := analytics.Align(analytics.IndustrySeries(rows), years)

	return &domain.IndustryTrend{
		Entity: domain.EntityRef{Code: code, Name: name},
		Trend:  domain.Series{Years: years, Values: values},
	}, nil
}

// CompareIndustries aligns the selected industries onto one shared year
// axis (the sorted union of their years) and adds the composite mean line
// computed from the already-aligned values, so every series, composite
// included, shares the exact same axis. Unknown keys simply contribute no
// series; an empty selection yields an empty comparison.
func (s *IndexService) CompareIndustries(ctx context.Context, keys []domain.EntityRef) (*domain.IndustryComparison, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("industry_compare").Inc()

	selected := make(map[domain.EntityRef]struct{}, len(keys))
	for _, key := range keys {
		selected[key] = struct{}{}
	}

	byEntity := make(map[domain.EntityRef][]domain.IndustryAverage, len(keys))
	var allRows []domain.IndustryAverage
	for _, row := range snap.Industries {
		ref := domain.EntityRef{Code: row.IndustryCode, Name: row.IndustryName}
		if _, ok := selected[ref]; !ok {
			continue
		}
		byEntity[ref] = append(byEntity[ref], row)
		allRows = append(allRows, row)
	}

	refs := make([]domain.EntityRef, 0, len(byEntity))
	for ref := range byEntity {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].Code < refs[j].Code
	})

	years := analytics.RowYears(allRows)

	series := make([]domain.LabeledSeries, 0, len(refs))
	aligned := make([][]*float64, 0, len(refs))
	for _, ref := range refs {
		values := analytics.Align(analytics.IndustrySeries(byEntity[ref]), years)
		aligned = append(aligned, values)
		series = append(series, domain.LabeledSeries{
			Entity: ref,
			Series: domain.Series{Years: years, Values: values},
		})
	}

	composite := analytics.OverallMean(aligned, len(years))

	s.logger.DebugContext(ctx, "industry comparison",
		slog.Int("selected", len(keys)),
		slog.Int("matched", len(refs)),
		slog.Int("axis_years", len(years)))

	return &domain.IndustryComparison{
		Years:     years,
		Series:    series,
		Composite: domain.Series{Years: years, Values: composite},
	}, nil
}
