package http

import (
	"context"

	"dtxcli/pkg/contracts/domain"
)

// IndexServiceInterface defines the query surface the handlers depend on.
// Keeping it narrow lets tests substitute a stub service.
type IndexServiceInterface interface {
	Overview(ctx context.Context) (*domain.DatasetOverview, error)
	LookupEnterprise(ctx context.Context, codeQuery, nameQuery string) (*domain.EnterpriseLookup, error)
	EnterpriseTrend(ctx context.Context, code, name string) (*domain.EnterpriseTrend, error)
	LookupIndustry(ctx context.Context, codeQuery, nameQuery string) (*domain.IndustryLookup, error)
	IndustryTrend(ctx context.Context, code, name string) (*domain.IndustryTrend, error)
	CompareIndustries(ctx context.Context, keys []domain.EntityRef) (*domain.IndustryComparison, error)
}

// AdminServiceInterface defines the operator actions exposed over HTTP.
type AdminServiceInterface interface {
	ReloadDataset(ctx context.Context)
}
