package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type buildingService interface {
	List(ctx context.Context) ([]models.Building, error)
	Get(ctx context.Context, id string) (*models.Building, error)
	Create(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error)
}

type organizationService interface {
	List(ctx context.Context, activeOnly bool) ([]models.Organization, error)
	Get(ctx context.Context, id string) (*models.Organization, error)
	Create(ctx context.Context, req dto.CreateOrganizationRequest) (*models.Organization, error)
}

// BuildingHandler exposes building catalog endpoints.
type BuildingHandler struct {
	buildings buildingService
}

// NewBuildingHandler builds a new handler.
func NewBuildingHandler(buildings buildingService) *BuildingHandler {
	return &BuildingHandler{buildings: buildings}
}

// List godoc
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	items, err := h.buildings.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get building by id
// @Tags Buildings
// @Produce json
// @Param id path string true "Building id"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [get]
func (h *BuildingHandler) Get(c *gin.Context) {
	building, err := h.buildings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// Create godoc
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param payload body dto.CreateBuildingRequest true "Building payload"
// @Success 201 {object} response.Envelope
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid building payload"))
		return
	}
	building, err := h.buildings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

// OrganizationHandler exposes organization catalog endpoints.
type OrganizationHandler struct {
	organizations organizationService
}

// NewOrganizationHandler builds a new handler.
func NewOrganizationHandler(organizations organizationService) *OrganizationHandler {
	return &OrganizationHandler{organizations: organizations}
}

// List godoc
// @Summary List organizations
// @Tags Organizations
// @Produce json
// @Param active query bool false "Restrict to active organizations"
// @Success 200 {object} response.Envelope
// @Router /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	items, err := h.organizations.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get organization by id
// @Tags Organizations
// @Produce json
// @Param id path string true "Organization id"
// @Success 200 {object} response.Envelope
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	organization, err := h.organizations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, organization, nil)
}

// Create godoc
// @Summary Create organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param payload body dto.CreateOrganizationRequest true "Organization payload"
// @Success 201 {object} response.Envelope
// @Router /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid organization payload"))
		return
	}
	organization, err := h.organizations.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, organization)
}
