package storefrontserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	projectsapp "github.com/cabinetworks/storefront/internal/domains/projects/application"
	projectsdomain "github.com/cabinetworks/storefront/internal/domains/projects/domain"
	projectsports "github.com/cabinetworks/storefront/internal/domains/projects/ports"
	apierrors "github.com/cabinetworks/storefront/internal/shared/errors"
)

// ProjectsAPI wires HTTP transport with the projects bounded context service.
type ProjectsAPI struct {
	service projectsports.Service
}

// NewProjectsAPI creates a ProjectsAPI backed by the provided service.
func NewProjectsAPI(service projectsports.Service) ProjectsAPI {
	return ProjectsAPI{service: service}
}

// Project is a sold job as rendered to clients.
type Project struct {
	ID                int64           `json:"id"`
	QuoteID           int64           `json:"quoteId,omitempty"`
	UserID            int64           `json:"userId"`
	Name              string          `json:"name"`
	Status            string          `json:"status"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	InstalledAt       *time.Time      `json:"installedAt,omitempty"`
	FinalPrice        decimal.Decimal `json:"finalPrice"`
	DepositPaid       decimal.Decimal `json:"depositPaid"`
	BalanceDue        decimal.Decimal `json:"balanceDue"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// CreateProjectRequest opens a new project in the design state.
type CreateProjectRequest struct {
	QuoteID int64  `json:"quoteId"`
	Name    string `json:"name" binding:"required"`
}

// UpdateProjectRequest patches a project. Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Name              *string          `json:"name"`
	Status            *string          `json:"status"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
	InstalledAt       *time.Time       `json:"installedAt"`
	FinalPrice        *decimal.Decimal `json:"finalPrice"`
	DepositPaid       *decimal.Decimal `json:"depositPaid"`
	BalanceDue        *decimal.Decimal `json:"balanceDue"`
	Notes             *string          `json:"notes"`
}

func fromProject(projection *projectsports.ProjectProjection) Project {
	project := projection.Entity
	return Project{
		ID:                project.ID,
		QuoteID:           project.QuoteID,
		UserID:            project.UserID,
		Name:              project.Name,
		Status:            string(project.Status),
		EstimatedDelivery: project.EstimatedDelivery,
		InstalledAt:       project.InstalledAt,
		FinalPrice:        project.FinalPrice,
		DepositPaid:       project.DepositPaid,
		BalanceDue:        project.BalanceDue,
		Notes:             project.Notes,
		CreatedAt:         projection.Metadata.CreatedAt,
		UpdatedAt:         projection.Metadata.UpdatedAt,
	}
}

// Post /api/projects
// Opens a new project, optionally linked to the quote it converted from
func (api *ProjectsAPI) CreateProject(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	var payload CreateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	project, err := projectsdomain.NewProject(userID, payload.QuoteID, payload.Name)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateProject(c.Request.Context(), project)
	if err != nil {
		respondProjectsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromProject(created))
}

// Get /api/projects/:projectId
// Find project by ID
func (api *ProjectsAPI) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}
	project, err := api.service.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, projectsports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("project", id))
			return
		}
		respondProjectsError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProject(project))
}

// Get /api/projects
// Lists projects newest first, scoped to the authenticated user when present
func (api *ProjectsAPI) ListProjects(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	projects, err := api.service.ListProjects(c.Request.Context(), userID)
	if err != nil {
		respondProjectsError(c, err)
		return
	}
	views := make([]Project, 0, len(projects))
	for _, project := range projects {
		views = append(views, fromProject(project))
	}
	c.JSON(http.StatusOK, views)
}

// Patch /api/projects/:projectId
// Patches project status, schedule, or financials
func (api *ProjectsAPI) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}
	var payload UpdateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	update := projectsports.ProjectUpdate{
		Name:              payload.Name,
		EstimatedDelivery: payload.EstimatedDelivery,
		InstalledAt:       payload.InstalledAt,
		FinalPrice:        payload.FinalPrice,
		DepositPaid:       payload.DepositPaid,
		BalanceDue:        payload.BalanceDue,
		Notes:             payload.Notes,
	}
	if payload.Status != nil {
		status := projectsdomain.Status(*payload.Status)
		update.Status = &status
	}
	updated, err := api.service.UpdateProject(c.Request.Context(), id, update)
	if err != nil {
		respondProjectsError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProject(updated))
}

func respondProjectsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projectsports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, projectsapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
