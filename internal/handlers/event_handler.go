package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/middleware"
	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
)

// MediaURLPrefix is where the upload directory is served.
const MediaURLPrefix = "/media/"

func ListEvents(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	filter := services.EventFilter{
		Category: helpers.OptionalQuery(c, "category"),
		Tag:      helpers.OptionalQuery(c, "tags"),
	}

	soloEvents, teamEvents, err := services.ListEvents(db, filter)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	events := make([]EventResponse, 0, len(soloEvents)+len(teamEvents))
	for i := range soloEvents {
		events = append(events, soloEventResponse(&soloEvents[i]))
	}
	for i := range teamEvents {
		events = append(events, teamEventResponse(&teamEvents[i]))
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func CreateEvent(c *gin.Context) {
	var req services.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	found, err := services.CreateEvent(db, &req)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, foundEventResponse(found))
}

func GetEvent(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	found, err := services.GetEvent(db, c.Param("public_id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, foundEventResponse(found))
}

func UpdateEvent(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	// A missing event is reported before any body error.
	if _, err := services.GetEvent(db, c.Param("public_id")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	var req services.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	found, err := services.UpdateEvent(db, c.Param("public_id"), &req)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, foundEventResponse(found))
}

func DeleteEvent(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}

	if err := services.DeleteEvent(db, c.Param("public_id")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// UploadEventMedia replaces the picture and/or logo of an event from a
// multipart form. Files that are replaced are removed from disk.
func UploadEventMedia(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}
	cfg := middleware.GetConfig(c)
	if cfg == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Configuration not found.")
		return
	}
	uploadDir := cfg.Media.UploadDir
	publicID := c.Param("public_id")

	if _, err := services.GetEvent(db, publicID); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	pictureHeader, err := optionalFormFile(c, "event_picture")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	logoHeader, err := optionalFormFile(c, "event_logo")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if pictureHeader == nil && logoHeader == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Provide event_picture or event_logo.")
		return
	}

	var stored []string
	discard := func() {
		for _, rel := range stored {
			removeMedia(uploadDir, MediaURLPrefix+rel)
		}
	}

	var picture, logo *string
	if pictureHeader != nil {
		rel, err := helpers.UploadFile(c, pictureHeader, uploadDir, "event_pictures")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		stored = append(stored, rel)
		url := MediaURLPrefix + rel
		picture = &url
	}
	if logoHeader != nil {
		rel, err := helpers.UploadFile(c, logoHeader, uploadDir, "event_logos")
		if err != nil {
			discard()
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		stored = append(stored, rel)
		url := MediaURLPrefix + rel
		logo = &url
	}

	found, replaced, err := services.UpdateEventMedia(db, publicID, picture, logo)
	if err != nil {
		discard()
		helpers.RespondWithServiceError(c, err)
		return
	}
	for _, old := range replaced {
		removeMedia(uploadDir, old)
	}

	c.JSON(http.StatusAccepted, foundEventResponse(found))
}

func optionalFormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return header, err
}

// removeMedia deletes a file previously stored by UploadEventMedia. Values
// that do not point into the media directory were set by clients and are
// left alone.
func removeMedia(uploadDir, url string) {
	rel, ok := strings.CutPrefix(url, MediaURLPrefix)
	if !ok || rel == "" {
		return
	}
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return
	}
	if err := helpers.DeleteFile(uploadDir, rel); err != nil {
		slog.Warn("failed to remove media file", slog.String("path", rel), slog.String("error", err.Error()))
	}
}
