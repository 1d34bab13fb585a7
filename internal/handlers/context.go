package handlers

import (
	"net/http"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func databaseFrom(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db, true
}
