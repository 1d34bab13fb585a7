package services

import (
	"time"

	"github.com/farellandr/techfesia/internal/models"
	"gorm.io/gorm"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// Input layouts also take unpadded months, days, hours and minutes.
	dateInputLayout  = "2006-1-2"
	clockInputLayout = "15:4"
)

// EventRequest is the JSON body accepted by the event create and edit
// endpoints. Category and Tags are pointers so that an omitted field can be
// told apart from an empty list.
type EventRequest struct {
	PublicID        *string   `json:"public_id"`
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	EventPicture    string    `json:"event_picture"`
	EventLogo       string    `json:"event_logo"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Venue           string    `json:"venue"`
	MaxParticipants *int      `json:"max_participants" binding:"required,min=0"`
	ReservedSlots   *int      `json:"reserved_slots" binding:"required,min=0"`
	TeamEvent       *bool     `json:"team_event" binding:"required"`
	MinTeamSize     *int      `json:"min_team_size" binding:"omitempty,min=1"`
	MaxTeamSize     *int      `json:"max_team_size" binding:"omitempty,min=1"`
	Category        *[]string `json:"category"`
	Tags            *[]string `json:"tags"`
}

// ValidatedEvent is the normalized form of an EventRequest that passed
// ValidateEvent. HasTags is false when the request carried no tags field.
type ValidatedEvent struct {
	StartDate  string
	EndDate    string
	StartTime  string
	EndTime    string
	Categories []models.Category
	Tags       []models.Tag
	HasTags    bool
}

// ValidateEvent runs the event checks in order and stops at the first
// failure, which is always an *APIError. Resolving an empty category list
// creates the default category if it does not exist yet.
func ValidateEvent(db *gorm.DB, req *EventRequest) (*ValidatedEvent, error) {
	startDate, err := time.Parse(dateInputLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}
	endDate, err := time.Parse(dateInputLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidEndDate
	}
	startTime, err := time.Parse(clockInputLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	endTime, err := time.Parse(clockInputLayout, req.EndTime)
	if err != nil {
		return nil, ErrInvalidEndTime
	}

	if endDate.Before(startDate) {
		return nil, ErrEndDateBeforeStart
	}
	if endDate.Equal(startDate) && !endTime.After(startTime) {
		return nil, ErrEndTimeBeforeStart
	}

	if *req.ReservedSlots > *req.MaxParticipants {
		return nil, ErrReservedSlots
	}

	valid := &ValidatedEvent{
		StartDate: startDate.Format(DateLayout),
		EndDate:   endDate.Format(DateLayout),
		StartTime: startTime.Format(ClockLayout),
		EndTime:   endTime.Format(ClockLayout),
	}

	var categoryNames []string
	if req.Category != nil {
		categoryNames = *req.Category
	}
	categories, missing, err := resolveByName[models.Category](db, categoryNames)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, unknownNames("categories", missing)
	}
	if len(categories) == 0 {
		others, err := EnsureDefaultCategory(db)
		if err != nil {
			return nil, err
		}
		categories = []models.Category{*others}
	}
	valid.Categories = categories

	if req.Tags != nil {
		tags, missing, err := resolveByName[models.Tag](db, *req.Tags)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, unknownNames("tags", missing)
		}
		valid.Tags = tags
		valid.HasTags = true
	}

	return valid, nil
}

type named interface {
	models.Category | models.Tag
}

func nameOf[T named](row T) string {
	switch v := any(row).(type) {
	case models.Category:
		return v.Name
	case models.Tag:
		return v.Name
	}
	return ""
}

// resolveByName loads the rows matching names in one query and returns them
// in request order, deduplicated, together with every name that matched no row.
func resolveByName[T named](db *gorm.DB, names []string) ([]T, []string, error) {
	if len(names) == 0 {
		return nil, nil, nil
	}
	var rows []T
	if err := db.Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	byName := make(map[string]T, len(rows))
	for _, row := range rows {
		byName[nameOf(row)] = row
	}

	var resolved []T
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		row, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		resolved = append(resolved, row)
	}
	return resolved, missing, nil
}

// EnsureDefaultCategory returns the "Others" category, creating it on first
// use. A concurrent creator losing the race on the unique name re-reads the
// winner's row.
func EnsureDefaultCategory(db *gorm.DB) (*models.Category, error) {
	var category models.Category
	err := db.Where("name = ?", models.DefaultCategoryName).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	category = models.Category{
		Name:        models.DefaultCategoryName,
		Description: models.DefaultCategoryDescription,
	}
	if err := db.Create(&category).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		category = models.Category{}
		if err := db.Where("name = ?", models.DefaultCategoryName).First(&category).Error; err != nil {
			return nil, err
		}
	}
	return &category, nil
}
