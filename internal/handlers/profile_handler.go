package handlers

import (
	"net/http"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetProfile(c *gin.Context) {
	value, exists := c.Get("user_id")
	userID, isUUID := value.(uuid.UUID)
	if !exists || !isUUID {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	user, err := services.GetUser(db, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
