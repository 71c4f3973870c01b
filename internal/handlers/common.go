package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/middleware"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/services"
)

// writeError maps service errors to HTTP. Unknown errors stay opaque.
func writeError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(apperrors.HTTPStatus(appErr), models.ErrorResponse{
			Error:   string(appErr.Kind),
			Message: appErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   string(apperrors.KindInternal),
		Message: "internal error",
	})
}

// actorFrom reassembles the authenticated caller from the JWT middleware's
// context values.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return services.Actor{}, false
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid user id"})
		return services.Actor{}, false
	}

	actor := services.Actor{UserID: userID}
	if role, ok := c.Get(middleware.RoleKey); ok {
		actor.Role, _ = role.(string)
	}
	if schoolIDStr, ok := c.Get(middleware.SchoolIDKey); ok {
		if s, _ := schoolIDStr.(string); s != "" {
			if schoolID, err := uuid.Parse(s); err == nil {
				actor.SchoolID = uuid.NullUUID{UUID: schoolID, Valid: true}
			}
		}
	}
	return actor, true
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
