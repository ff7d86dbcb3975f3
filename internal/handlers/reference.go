package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
)

type ReferenceHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewReferenceHandler(dbClient *supabase.DatabaseClient) *ReferenceHandler {
	return &ReferenceHandler{
		dbClient: dbClient,
	}
}

// GetPackages godoc
// @Summary     List packages
// @Description Returns the active packages ordered by per-image price
// @Tags        reference
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.PackageResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /packages [get]
func (h *ReferenceHandler) GetPackages(c *gin.Context) {
	packages, err := h.dbClient.ListPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list packages",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.PackageResponse, len(packages))
	for i, p := range packages {
		responses[i] = models.PackageResponse{
			ID:             p.ID.String(),
			Name:           p.Name,
			PriceCentsEach: p.PriceCentsEach,
		}
		if p.Description.Valid {
			responses[i].Description = p.Description.String
		}
	}

	c.JSON(http.StatusOK, responses)
}

// GetAddons godoc
// @Summary     List add-ons
// @Description Returns the active add-ons ordered by per-image price
// @Tags        reference
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.AddonResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /addons [get]
func (h *ReferenceHandler) GetAddons(c *gin.Context) {
	addons, err := h.dbClient.ListAddons()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list addons",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.AddonResponse, len(addons))
	for i, a := range addons {
		responses[i] = models.AddonResponse{
			ID:             a.ID.String(),
			Name:           a.Name,
			PriceCentsEach: a.PriceCentsEach,
		}
		if a.Description.Valid {
			responses[i].Description = a.Description.String
		}
	}

	c.JSON(http.StatusOK, responses)
}
