package middleware

import (
	"github.com/farellandr/techfesia/config"
	"github.com/farellandr/techfesia/internal/mailer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func GetDB(c *gin.Context) *gorm.DB {
	db, exists := c.Get("db")
	if !exists {
		return nil
	}
	return db.(*gorm.DB)
}

func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	}
}

func GetConfig(c *gin.Context) *config.Config {
	cfg, exists := c.Get("config")
	if !exists {
		return nil
	}
	return cfg.(*config.Config)
}

func MailerMiddleware(sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("mailer", sender)
		c.Next()
	}
}

func GetMailer(c *gin.Context) mailer.Sender {
	sender, exists := c.Get("mailer")
	if !exists {
		return nil
	}
	return sender.(mailer.Sender)
}
