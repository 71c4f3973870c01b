package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmerch-backend/internal/models"
)

// HealthHandler reports liveness. No auth.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status: "ok",
	})
}
