package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dtxcli/internal/errors"
	"dtxcli/pkg/contracts/domain"
)

// stubIndexService returns canned results for handler tests.
type stubIndexService struct {
	lookupEnterprise *domain.EnterpriseLookup
	enterpriseTrend  *domain.EnterpriseTrend
	lookupIndustry   *domain.IndustryLookup
	industryTrend    *domain.IndustryTrend
	comparison       *domain.IndustryComparison
	overview         *domain.DatasetOverview
	err              error
}

func (s *stubIndexService) Overview(ctx context.Context) (*domain.DatasetOverview, error) {
	return s.overview, s.err
}

func (s *stubIndexService) LookupEnterprise(ctx context.Context, codeQuery, nameQuery string) (*domain.EnterpriseLookup, error) {
	return s.lookupEnterprise, s.err
}

func (s *stubIndexService) EnterpriseTrend(ctx context.Context, code, name string) (*domain.EnterpriseTrend, error) {
	return s.enterpriseTrend, s.err
}

func (s *stubIndexService) LookupIndustry(ctx context.Context, codeQuery, nameQuery string) (*domain.IndustryLookup, error) {
	return s.lookupIndustry, s.err
}

func (s *stubIndexService) IndustryTrend(ctx context.Context, code, name string) (*domain.IndustryTrend, error) {
	return s.industryTrend, s.err
}

func (s *stubIndexService) CompareIndustries(ctx context.Context, keys []domain.EntityRef) (*domain.IndustryComparison, error) {
	return s.comparison, s.err
}

type stubAdminService struct {
	reloads int
}

func (s *stubAdminService) ReloadDataset(ctx context.Context) {
	s.reloads++
}

func newTestHandler(service *stubIndexService, admin *stubAdminService) *IndexHandler {
	logger := slog.Default()
	return NewIndexHandler(service, admin, logger, apperrors.NewErrorHandler(logger))
}

func TestLookupEnterprises_RequiresAQuery(t *testing.T) {
	handler := newTestHandler(&stubIndexService{}, &stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/enterprises/", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/validation", problem["type"])
}

func TestLookupEnterprises_OK(t *testing.T) {
	service := &stubIndexService{
		lookupEnterprise: &domain.EnterpriseLookup{
			Candidates: []domain.EntityRef{{Code: "000820", Name: "神雾节能"}},
			Groups: []domain.EnterpriseGroup{{
				Entity: domain.EntityRef{Code: "000820", Name: "神雾节能"},
				Records: []domain.EnterpriseRecord{
					{Code: "000820", Name: "神雾节能", Year: 2020, Index: domain.Float(0.4), IndustryCode: "C33", IndustryName: "金属制品业"},
				},
			}},
		},
	}
	handler := newTestHandler(service, &stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/enterprises/?code=0008", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.EnterpriseLookup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "神雾节能", got.Candidates[0].Name)
}

func TestEnterpriseTrend_NotFound(t *testing.T) {
	service := &stubIndexService{err: apperrors.NewNotFoundError("enterprise 不存在 (999999) not found")}
	handler := newTestHandler(service, &stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/enterprises/trend?code=999999&name=%E4%B8%8D%E5%AD%98%E5%9C%A8", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnterpriseTrend_MissingParams(t *testing.T) {
	handler := newTestHandler(&stubIndexService{}, &stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/enterprises/trend?code=000820", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareIndustries(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid selection",
			body:       `{"industries":[{"code":"J66","name":"货币金融服务"}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty selection rejected",
			body:       `{"industries":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "entity missing name rejected",
			body:       `{"industries":[{"code":"J66"}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json rejected",
			body:       `{"industries":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubIndexService{
				comparison: &domain.IndustryComparison{Years: []int{2020}},
			}
			handler := newTestHandler(service, &stubAdminService{})

			req := httptest.NewRequest(http.MethodPost, "/industries/compare", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDatasetReload(t *testing.T) {
	admin := &stubAdminService{}
	handler := newTestHandler(&stubIndexService{}, admin)

	req := httptest.NewRequest(http.MethodPost, "/dataset/reload", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, admin.reloads)
}

func TestSourceErrorsMapToServiceUnavailable(t *testing.T) {
	service := &stubIndexService{err: apperrors.ErrSourceNotFound}
	handler := newTestHandler(service, &stubAdminService{})

	req := httptest.NewRequest(http.MethodGet, "/overview", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/source/not-found", problem["type"])
}
