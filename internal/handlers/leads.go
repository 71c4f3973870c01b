package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/services"
)

type LeadsHandler struct {
	provision *services.ProvisionService
}

func NewLeadsHandler(provision *services.ProvisionService) *LeadsHandler {
	return &LeadsHandler{provision: provision}
}

// ConfirmConfiguration moves a lead to approved and creates its shop.
// Calling it again returns the existing shop.
func (h *LeadsHandler) ConfirmConfiguration(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "lead_id")
	if !ok {
		return
	}

	shopID, err := h.provision.Confirm(c.Request.Context(), leadID, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ConfirmResponse{
		LeadID: leadID.String(),
		ShopID: shopID.String(),
		Status: models.LeadStatusApproved,
	})
}

// ProvisionProducts materializes products and variants for an approved lead.
// Per-textile failures are reported individually; success is true only with
// zero failures.
func (h *LeadsHandler) ProvisionProducts(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	leadID, ok := pathUUID(c, "lead_id")
	if !ok {
		return
	}

	result, err := h.provision.ProvisionProducts(c.Request.Context(), leadID, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ProvisionResponse{
		LeadID:    leadID.String(),
		ShopID:    result.ShopID.String(),
		Requested: result.Requested,
		Created:   result.Created,
		Success:   len(result.Failures) == 0,
		Failures:  result.Failures,
		Warnings:  result.Warnings,
	}

	status := http.StatusOK
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
