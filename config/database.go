package config

import (
	"github.com/farellandr/techfesia/internal/models"
	"github.com/farellandr/techfesia/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate creates the schema and seeds roles and the configured staff user.
func Migrate(db *gorm.DB, cfg *Config) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	if err := services.SeedRoles(db); err != nil {
		return err
	}

	if cfg.Staff.Username != "" {
		return services.SeedStaffUser(db, cfg.Staff.Username, cfg.Staff.Email, cfg.Staff.Password)
	}
	return nil
}
