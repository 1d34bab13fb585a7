package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String(), "role": c.GetString("role")})
	})
	r.GET("/staff", JWTAuthMiddleware(testSecret), StaffOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func tokenFor(t *testing.T, role string) (string, uuid.UUID) {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: "u", Role: models.Role{Name: role}}
	token, err := helpers.GenerateAccessToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	return token, user.ID
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter()
	token, userID := tokenFor(t, models.RoleParticipant)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "no header", status: http.StatusUnauthorized, body: "Authentication credentials were not provided."},
		{name: "wrong scheme", header: "Token " + token, status: http.StatusUnauthorized, body: "Authentication credentials were not provided."},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized, body: "Invalid or expired token."},
		{name: "valid", header: "Bearer " + token, status: http.StatusOK, body: userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestStaffOnlyMiddleware(t *testing.T) {
	r := newAuthRouter()

	for role, status := range map[string]int{
		models.RoleStaff:       http.StatusOK,
		models.RoleParticipant: http.StatusForbidden,
	} {
		t.Run(role, func(t *testing.T) {
			token, _ := tokenFor(t, role)
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, status, w.Code)
			if status == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "You do not have permission to perform this action.")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), Recovery())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
