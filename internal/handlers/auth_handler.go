package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/farellandr/techfesia/config"
	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/mailer"
	"github.com/farellandr/techfesia/internal/middleware"
	"github.com/farellandr/techfesia/internal/models"
	"github.com/farellandr/techfesia/internal/services"
	"github.com/gin-gonic/gin"
)

func Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}
	cfg := middleware.GetConfig(c)
	if cfg == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Configuration not found.")
		return
	}

	user, err := services.RegisterUser(db, &req)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if err := sendConfirmation(c, cfg, user); err != nil {
		slog.Error("failed to send confirmation email",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully. Please confirm your email.",
		"user":    user,
	})
}

func sendConfirmation(c *gin.Context, cfg *config.Config, user *models.User) error {
	sender := middleware.GetMailer(c)
	if sender == nil {
		return fmt.Errorf("mailer not configured")
	}

	token, err := helpers.GenerateConfirmationToken(cfg.Auth.JWTSecret, user.Username, cfg.Auth.ConfirmationTTL)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/v1/accounts/%s/email_confirmation?token=%s",
		strings.TrimRight(cfg.Server.PublicURL, "/"),
		url.PathEscape(user.Username),
		url.QueryEscape(token),
	)

	msg, err := mailer.ConfirmationMessage(user.Email, user.Username, link)
	if err != nil {
		return err
	}
	_, err = sender.Send(c.Request.Context(), msg)
	return err
}

func Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithBindError(c, err)
		return
	}

	db, ok := databaseFrom(c)
	if !ok {
		return
	}
	cfg := middleware.GetConfig(c)
	if cfg == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Configuration not found.")
		return
	}

	user, err := services.Authenticate(db, &req)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	token, err := helpers.GenerateAccessToken(cfg.Auth.JWTSecret, user, cfg.Auth.TokenTTL)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func ConfirmEmail(c *gin.Context) {
	db, ok := databaseFrom(c)
	if !ok {
		return
	}
	cfg := middleware.GetConfig(c)
	if cfg == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Configuration not found.")
		return
	}

	username := c.Param("username")
	if err := helpers.ParseConfirmationToken(cfg.Auth.JWTSecret, c.Query("token"), username); err != nil {
		helpers.RespondWithServiceError(c, services.ErrInvalidConfirmLink)
		return
	}

	if _, err := services.ConfirmEmail(db, username); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed successfully."})
}
