package handlers

import (
	"net/http"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
)

type TaxonomyRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type DescriptionRequest struct {
	Description *string `json:"description" binding:"required"`
}

func ListTags(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	tags, err := services.ListTags(db)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

func CreateTag(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	tag, err := services.CreateTag(db, req.Name, req.Description)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func UpdateTag(c *gin.Context) {
	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	tag, err := services.UpdateTag(db, c.Param("name"), *req.Description)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, tag)
}

func DeleteTag(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	if err := services.DeleteTag(db, c.Param("name")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
