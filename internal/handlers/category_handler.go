package handlers

import (
	"net/http"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
)

func ListCategories(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	categories, err := services.ListCategories(db)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func CreateCategory(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	category, err := services.CreateCategory(db, req.Name, req.Description)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	category, err := services.UpdateCategory(db, c.Param("name"), *req.Description)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, category)
}

func DeleteCategory(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	if err := services.DeleteCategory(db, c.Param("name")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
