package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recommend-backend/internal/catalog"
	"recommend-backend/internal/shared/server/middleware"
	"recommend-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/recommend", h.recommend)
	rg.GET("/presets", h.presets)
	rg.GET("/domains", h.domains)
}

func (h *Handler) recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", err.Error())
		return
	}
	in := req.toInput()
	c.Set(middleware.DomainKey, in.Domain)
	c.Set(middleware.PresetKey, in.Constraints.Preset.String())

	out, err := h.Svc.Recommend(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownDomain):
			respond.Error(c, http.StatusBadRequest, "unknown_domain", "Unknown domain: "+in.Domain, nil)
		case errors.Is(err, catalog.ErrInvalidCatalog):
			respond.Error(c, http.StatusInternalServerError, "invalid_catalog", "catalog failed validation", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		}
		return
	}

	respond.OK(c, RecommendResponse{
		Recommendations: out.Items,
		TotalItems:      out.TotalCount,
		FilteredOut:     out.FilteredOutCount,
		Domain:          out.Domain,
		ConstraintsUsed: req.Constraints.resolve(),
		PresetUsed:      req.Preset,
	})
}

func (h *Handler) presets(c *gin.Context) {
	respond.OK(c, gin.H{"presets": toPresetResponses()})
}

func (h *Handler) domains(c *gin.Context) {
	domains, err := h.Svc.Domains(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list domains", nil)
		return
	}
	if domains == nil {
		domains = []string{}
	}
	respond.OK(c, gin.H{"domains": domains})
}
