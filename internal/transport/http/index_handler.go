package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "dtxcli/internal/errors"
	"dtxcli/pkg/contracts/domain"
)

// IndexHandler handles index query HTTP requests with RFC 7807 errors.
type IndexHandler struct {
	service      IndexServiceInterface
	admin        AdminServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewIndexHandler creates a new index query handler.
func NewIndexHandler(service IndexServiceInterface, admin AdminServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *IndexHandler {
	return &IndexHandler{
		service:      service,
		admin:        admin,
		logger:       logger.With(slog.String("component", "index_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the query routes.
func (h *IndexHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.Overview)

	r.Route("/enterprises", func(r chi.Router) {
		r.Get("/", h.LookupEnterprises)
		r.Get("/trend", h.EnterpriseTrend)
	})

	r.Route("/industries", func(r chi.Router) {
		r.Get("/", h.LookupIndustries)
		r.Get("/trend", h.IndustryTrend)
		r.Post("/compare", h.CompareIndustries)
	})

	r.Post("/dataset/reload", h.ReloadDataset)

	return r
}

// Overview handles GET /overview
func (h *IndexHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, overview)
}

// LookupEnterprises handles GET /enterprises?code=&name=
// At least one of the two fuzzy queries must be non-empty; guarding the
// all-empty case here keeps the matcher's OR contract clean.
func (h *IndexHandler) LookupEnterprises(w http.ResponseWriter, r *http.Request) {
	codeQuery := r.URL.Query().Get("code")
	nameQuery := r.URL.Query().Get("name")

	if codeQuery == "" && nameQuery == "" {
		render.Render(w, r, apierrors.ValidationProblem("code,name",
			"at least one of code or name query must be provided", r.URL.Path))
		return
	}

	result, err := h.service.LookupEnterprise(r.Context(), codeQuery, nameQuery)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// EnterpriseTrend handles GET /enterprises/trend?code=&name=
// Both parameters identify one exact enterprise; unknown entities are 404.
func (h *IndexHandler) EnterpriseTrend(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	name := r.URL.Query().Get("name")

	if code == "" || name == "" {
		render.Render(w, r, apierrors.ValidationProblem("code,name",
			"both code and name must identify the enterprise", r.URL.Path))
		return
	}

	trend, err := h.service.EnterpriseTrend(r.Context(), code, name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, trend)
}

// LookupIndustries handles GET /industries?code=&name=
func (h *IndexHandler) LookupIndustries(w http.ResponseWriter, r *http.Request) {
	codeQuery := r.URL.Query().Get("code")
	nameQuery := r.URL.Query().Get("name")

	if codeQuery == "" && nameQuery == "" {
		render.Render(w, r, apierrors.ValidationProblem("code,name",
			"at least one of code or name query must be provided", r.URL.Path))
		return
	}

	result, err := h.service.LookupIndustry(r.Context(), codeQuery, nameQuery)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// IndustryTrend handles GET /industries/trend?code=&name=
func (h *IndexHandler) IndustryTrend(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	name := r.URL.Query().Get("name")

	if code == "" || name == "" {
		render.Render(w, r, apierrors.ValidationProblem("code,name",
			"both code and name must identify the industry", r.URL.Path))
		return
	}

	trend, err := h.service.IndustryTrend(r.Context(), code, name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, trend)
}

// CompareIndustriesRequest is the POST body for a multi-industry comparison.
type CompareIndustriesRequest struct {
	Industries []domain.EntityRef `json:"industries" validate:"required,min=1,max=10,dive"`
}

// CompareIndustries handles POST /industries/compare
func (h *IndexHandler) CompareIndustries(w http.ResponseWriter, r *http.Request) {
	var req CompareIndustriesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.ValidationProblem("body",
			"request body must be valid JSON", r.URL.Path))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, apierrors.ValidationProblem("industries",
			"industries must list between 1 and 10 (code, name) pairs", r.URL.Path))
		return
	}

	comparison, err := h.service.CompareIndustries(r.Context(), req.Industries)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, comparison)
}

// ReloadDataset handles POST /dataset/reload
func (h *IndexHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	h.admin.ReloadDataset(r.Context())
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]string{"status": "reload scheduled"})
}
