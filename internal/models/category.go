package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCategoryName        = "Others"
	DefaultCategoryDescription = "It is a default category for events"
)

type Category struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"-"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	Description string      `json:"description"`
	SoloEvents  []SoloEvent `gorm:"many2many:solo_event_categories;" json:"-"`
	TeamEvents  []TeamEvent `gorm:"many2many:team_event_categories;" json:"-"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}
