package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/services"
	"schoolmerch-backend/internal/shopify"
)

type ExportHandler struct {
	export *services.ExportService
}

func NewExportHandler(export *services.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// ExportProduct submits a product to the external storefront platform.
// Platform-side user errors come back in full with a 422.
func (h *ExportHandler) ExportProduct(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}

	var req models.ExportProductRequest
	// Body is optional; all fields have defaults.
	_ = c.ShouldBindJSON(&req)

	outcome, err := h.export.ExportProduct(c.Request.Context(), actor, productID, shopify.ExportMeta{
		Description: req.Description,
		Vendor:      req.Vendor,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ExportResponse{
		ProductID:         productID.String(),
		PlatformProductID: outcome.PlatformProductID,
		Success:           len(outcome.UserErrors) == 0,
	}
	for _, ue := range outcome.UserErrors {
		resp.UserErrors = append(resp.UserErrors, models.PlatformUserError{
			Field:   ue.Field,
			Message: ue.Message,
		})
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}
