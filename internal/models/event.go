package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventFields are the columns shared by solo and team events. Titles and
// public ids are unique per table; uniqueness across both tables is enforced
// by the services package.
type EventFields struct {
	PublicID        string `gorm:"uniqueIndex;not null"`
	Title           string `gorm:"uniqueIndex;not null"`
	Description     string
	EventPicture    string
	EventLogo       string
	StartDate       string `gorm:"type:varchar(10);not null"`
	EndDate         string `gorm:"type:varchar(10);not null"`
	StartTime       string `gorm:"type:varchar(5);not null"`
	EndTime         string `gorm:"type:varchar(5);not null"`
	Venue           string
	MaxParticipants int  `gorm:"not null"`
	ReservedSlots   int  `gorm:"not null;default:0"`
	TeamEvent       bool `gorm:"not null"`
}

type SoloEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`
	EventFields
	Categories []Category `gorm:"many2many:solo_event_categories;"`
	Tags       []Tag      `gorm:"many2many:solo_event_tags;"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (event *SoloEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.PublicID == "" {
		event.PublicID = uuid.New().String()
	}
	event.TeamEvent = false
	return
}

type TeamEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`
	EventFields
	MinTeamSize int        `gorm:"not null"`
	MaxTeamSize int        `gorm:"not null"`
	Categories  []Category `gorm:"many2many:team_event_categories;"`
	Tags        []Tag      `gorm:"many2many:team_event_tags;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (event *TeamEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.PublicID == "" {
		event.PublicID = uuid.New().String()
	}
	event.TeamEvent = true
	return
}

// EventKind discriminates the result of a public id lookup.
type EventKind int

const (
	EventNotFound EventKind = iota
	EventSolo
	EventTeam
)

// FoundEvent is a lookup result over {NotFound, Solo, Team}. Exactly one of
// Solo and Team is set when Kind is not EventNotFound.
type FoundEvent struct {
	Kind EventKind
	Solo *SoloEvent
	Team *TeamEvent
}

func (f FoundEvent) Fields() *EventFields {
	switch f.Kind {
	case EventSolo:
		return &f.Solo.EventFields
	case EventTeam:
		return &f.Team.EventFields
	}
	return nil
}
