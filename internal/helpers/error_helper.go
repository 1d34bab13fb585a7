package helpers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: customMessage})
}

// RespondWithServiceError writes an *services.APIError as-is. Anything else
// is an unexpected store or runtime failure and becomes a logged 500.
func RespondWithServiceError(c *gin.Context, err error) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		RespondWithError(c, apiErr.Status, apiErr.Message)
		return
	}
	slog.Error("request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	RespondWithError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// RespondWithBindError reports a request body that could not be decoded or
// failed its binding tags.
func RespondWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields: "+strings.Join(fields, ", "))
		return
	}
	RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
}

// UseJSONFieldNames makes binding errors name fields by their json key, so
// clients see max_participants rather than MaxParticipants.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}

var jsonNamesOnce sync.Once
