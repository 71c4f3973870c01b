package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/services"
)

type AssetsHandler struct {
	assets *services.AssetService
}

func NewAssetsHandler(assets *services.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// AssignColors fans a bare uploaded asset out to the given colors. Running
// it again on an already-attributed asset is a no-op.
func (h *AssetsHandler) AssignColors(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "image_id")
	if !ok {
		return
	}

	var req models.AssignColorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "colors list is required"})
		return
	}

	result, err := h.assets.AssignToColors(c.Request.Context(), imageID, productID, req.Colors)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.AssignColorsResponse{
		ImageID:   imageID.String(),
		Attempted: len(result.Outcomes),
	}
	if result.AlreadyAttributed {
		resp.Success = true
		c.JSON(http.StatusOK, resp)
		return
	}

	for _, outcome := range result.Outcomes {
		item := models.ColorAssignResult{
			Color:          outcome.Color,
			ImageURL:       outcome.ImageURL,
			OriginalDelete: string(outcome.OriginalDelete),
		}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}
	resp.Success = resp.Succeeded == resp.Attempted

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

// RenamePrintFile moves one asset's print-ready file to its derived name.
func (h *AssetsHandler) RenamePrintFile(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "image_id")
	if !ok {
		return
	}

	outcome, err := h.assets.RenamePrintFile(c.Request.Context(), imageID, productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RenameResult{
		ImageID:   outcome.ImageID.String(),
		OldPath:   outcome.OldPath,
		NewPath:   outcome.NewPath,
		Repointed: outcome.Repointed,
		Skipped:   outcome.Skipped,
	})
}

// RenameAll re-derives filenames for every attributed image of a product.
func (h *AssetsHandler) RenameAll(c *gin.Context) {
	if _, ok := actorFrom(c); !ok {
		return
	}
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}

	outcomes, err := h.assets.RenameAllAttributed(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.RenameAllResponse{
		ProductID: productID.String(),
		Attempted: len(outcomes),
	}
	for _, outcome := range outcomes {
		item := models.RenameResult{
			ImageID:   outcome.ImageID.String(),
			OldPath:   outcome.OldPath,
			NewPath:   outcome.NewPath,
			Repointed: outcome.Repointed,
			Skipped:   outcome.Skipped,
		}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}
	resp.Success = resp.Succeeded == resp.Attempted

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
