package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/techfesia/config"
	"github.com/farellandr/techfesia/internal/handlers"
	"github.com/farellandr/techfesia/internal/helpers"
	"github.com/farellandr/techfesia/internal/mailer"
	"github.com/farellandr/techfesia/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Start(cfg *config.Config) error {
	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}
	if err := config.Migrate(db, cfg); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	r := NewRouter(db, cfg, newMailer(cfg))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newMailer(cfg *config.Config) mailer.Sender {
	if cfg.Mail.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return mailer.NewNoopSender()
	}
	return mailer.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
}

// NewRouter wires every route against the given store, config and mailer.
func NewRouter(db *gorm.DB, cfg *config.Config, sender mailer.Sender) *gin.Engine {
	helpers.UseJSONFieldNames()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
	)

	r.Static(handlers.MediaURLPrefix, cfg.Media.UploadDir)
	setupRoutes(r, db, cfg, sender)
	return r
}

func setupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, sender mailer.Sender) {
	r.Use(
		middleware.DatabaseMiddleware(db),
		middleware.ConfigMiddleware(cfg),
		middleware.MailerMiddleware(sender),
	)

	r.GET("/healthz", handlers.HealthCheck)

	public := r.Group("/v1")
	{
		accounts := public.Group("/accounts")
		{
			accounts.POST("/register", handlers.Register)
			accounts.POST("/login", handlers.Login)
			accounts.GET("/:username/email_confirmation", handlers.ConfirmEmail)
		}

		public.GET("/events", handlers.ListEvents)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.Auth.JWTSecret))
	{
		protected.GET("/profile", handlers.GetProfile)
	}

	staff := r.Group("/v1")
	staff.Use(middleware.JWTAuthMiddleware(cfg.Auth.JWTSecret), middleware.StaffOnlyMiddleware())
	{
		tags := staff.Group("/tags")
		{
			tags.GET("", handlers.ListTags)
			tags.POST("", handlers.CreateTag)
			tags.PUT("/:name", handlers.UpdateTag)
			tags.DELETE("/:name", handlers.DeleteTag)
		}

		categories := staff.Group("/categories")
		{
			categories.GET("", handlers.ListCategories)
			categories.POST("", handlers.CreateCategory)
			categories.PUT("/:name", handlers.UpdateCategory)
			categories.DELETE("/:name", handlers.DeleteCategory)
		}

		events := staff.Group("/events")
		{
			events.POST("", handlers.CreateEvent)
			events.GET("/:public_id", handlers.GetEvent)
			events.PUT("/:public_id", handlers.UpdateEvent)
			events.DELETE("/:public_id", handlers.DeleteEvent)
			events.PUT("/:public_id/media", handlers.UploadEventMedia)
		}
	}
}
