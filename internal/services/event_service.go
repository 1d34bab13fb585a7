package services

import (
	"github.com/farellandr/techfesia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter narrows ListEvents. A nil field means no filtering on it.
type EventFilter struct {
	Category *string
	Tag      *string
}

// FindEvent looks a public id up among solo events first, then team events.
// A miss is reported through Kind, not through the error.
func FindEvent(db *gorm.DB, publicID string) (models.FoundEvent, error) {
	var solo models.SoloEvent
	err := db.Preload("Categories").Preload("Tags").Where("public_id = ?", publicID).First(&solo).Error
	if err == nil {
		return models.FoundEvent{Kind: models.EventSolo, Solo: &solo}, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.FoundEvent{}, err
	}

	var team models.TeamEvent
	err = db.Preload("Categories").Preload("Tags").Where("public_id = ?", publicID).First(&team).Error
	if err == nil {
		return models.FoundEvent{Kind: models.EventTeam, Team: &team}, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.FoundEvent{}, err
	}
	return models.FoundEvent{Kind: models.EventNotFound}, nil
}

// GetEvent is FindEvent with a miss turned into ErrEventNotFound.
func GetEvent(db *gorm.DB, publicID string) (models.FoundEvent, error) {
	found, err := FindEvent(db, publicID)
	if err != nil {
		return found, err
	}
	if found.Kind == models.EventNotFound {
		return found, ErrEventNotFound
	}
	return found, nil
}

func ListEvents(db *gorm.DB, filter EventFilter) ([]models.SoloEvent, []models.TeamEvent, error) {
	var category *models.Category
	if filter.Category != nil {
		category = &models.Category{}
		if err := db.Where("name = ?", *filter.Category).First(category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, ErrUnknownFilterCat
			}
			return nil, nil, err
		}
	}

	var tag *models.Tag
	if filter.Tag != nil {
		tag = &models.Tag{}
		if err := db.Where("name = ?", *filter.Tag).First(tag).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil, ErrUnknownFilterTag
			}
			return nil, nil, err
		}
	}

	var solo []models.SoloEvent
	if err := filteredEvents(db, "solo_event", category, tag).Find(&solo).Error; err != nil {
		return nil, nil, err
	}
	var team []models.TeamEvent
	if err := filteredEvents(db, "team_event", category, tag).Find(&team).Error; err != nil {
		return nil, nil, err
	}
	return solo, team, nil
}

// filteredEvents builds the query for one event table; kind is the singular
// table name that prefixes its join tables.
func filteredEvents(db *gorm.DB, kind string, category *models.Category, tag *models.Tag) *gorm.DB {
	query := db.Preload("Categories").Preload("Tags").Order("created_at")
	if category != nil {
		query = query.Where("id IN (?)",
			db.Table(kind+"_categories").Select(kind+"_id").Where("category_id = ?", category.ID))
	}
	if tag != nil {
		query = query.Where("id IN (?)",
			db.Table(kind+"_tags").Select(kind+"_id").Where("tag_id = ?", tag.ID))
	}
	return query
}

// CreateEvent validates req and stores a solo or team event with its
// categories and tags in a single transaction.
func CreateEvent(db *gorm.DB, req *EventRequest) (models.FoundEvent, error) {
	valid, err := ValidateEvent(db, req)
	if err != nil {
		return models.FoundEvent{}, err
	}

	var publicID string
	err = db.Transaction(func(tx *gorm.DB) error {
		if req.PublicID != nil {
			if err := checkFree(tx, &models.SoloEvent{}, "public_id", *req.PublicID, ErrSoloPublicIDExists); err != nil {
				return err
			}
			if err := checkFree(tx, &models.TeamEvent{}, "public_id", *req.PublicID, ErrTeamPublicIDExists); err != nil {
				return err
			}
		}
		fields := eventFields(req, valid)

		if *req.TeamEvent {
			if err := checkFree(tx, &models.SoloEvent{}, "title", req.Title, ErrSoloTitleExists); err != nil {
				return err
			}
			minSize, maxSize, err := teamSizes(req)
			if err != nil {
				return err
			}
			event := &models.TeamEvent{EventFields: fields, MinTeamSize: minSize, MaxTeamSize: maxSize}
			if err := insertEvent(tx, event, ErrTeamTitleTaken); err != nil {
				return err
			}
			publicID = event.PublicID
			return attachRelations(tx, event, valid)
		}

		if err := checkFree(tx, &models.TeamEvent{}, "title", req.Title, ErrTeamTitleExists); err != nil {
			return err
		}
		event := &models.SoloEvent{EventFields: fields}
		if err := insertEvent(tx, event, ErrSoloTitleTaken); err != nil {
			return err
		}
		publicID = event.PublicID
		return attachRelations(tx, event, valid)
	})
	if err != nil {
		return models.FoundEvent{}, err
	}
	return GetEvent(db, publicID)
}

// UpdateEvent edits the event behind publicID. When the team_event flag
// changes the kind, the old row is deleted and a new one carrying the same
// public id is created; both steps share one transaction.
func UpdateEvent(db *gorm.DB, publicID string, req *EventRequest) (models.FoundEvent, error) {
	found, err := GetEvent(db, publicID)
	if err != nil {
		return found, err
	}
	if req.PublicID != nil && *req.PublicID != publicID {
		return found, ErrPublicIDImmutable
	}

	valid, err := ValidateEvent(db, req)
	if err != nil {
		return found, err
	}

	toTeam := *req.TeamEvent
	var minSize, maxSize int
	if toTeam {
		if minSize, maxSize, err = teamSizes(req); err != nil {
			return found, err
		}
	}

	fields := eventFields(req, valid)
	fields.PublicID = publicID

	err = db.Transaction(func(tx *gorm.DB) error {
		switch {
		case found.Kind == models.EventSolo && !toTeam:
			if err := checkFree(tx, &models.TeamEvent{}, "title", req.Title, ErrTeamTitleExists); err != nil {
				return err
			}
			event := found.Solo
			event.EventFields = fields
			if err := saveEvent(tx, event, ErrSoloTitleTaken); err != nil {
				return err
			}
			return attachRelations(tx, event, valid)

		case found.Kind == models.EventSolo && toTeam:
			if err := deleteEvent(tx, found.Solo); err != nil {
				return err
			}
			if err := checkFree(tx, &models.SoloEvent{}, "title", req.Title, ErrSoloTitleExists); err != nil {
				return err
			}
			event := &models.TeamEvent{EventFields: fields, MinTeamSize: minSize, MaxTeamSize: maxSize}
			if err := insertEvent(tx, event, ErrTeamTitleTakenOnEdit); err != nil {
				return err
			}
			return attachRelations(tx, event, valid)

		case found.Kind == models.EventTeam && toTeam:
			if err := checkFree(tx, &models.SoloEvent{}, "title", req.Title, ErrSoloTitleExists); err != nil {
				return err
			}
			event := found.Team
			event.EventFields = fields
			event.MinTeamSize = minSize
			event.MaxTeamSize = maxSize
			if err := saveEvent(tx, event, ErrTeamTitleTaken); err != nil {
				return err
			}
			return attachRelations(tx, event, valid)

		default:
			if err := deleteEvent(tx, found.Team); err != nil {
				return err
			}
			if err := checkFree(tx, &models.TeamEvent{}, "title", req.Title, ErrTeamTitleExists); err != nil {
				return err
			}
			event := &models.SoloEvent{EventFields: fields}
			if err := insertEvent(tx, event, ErrSoloTitleExists); err != nil {
				return err
			}
			return attachRelations(tx, event, valid)
		}
	})
	if err != nil {
		return found, err
	}
	return GetEvent(db, publicID)
}

func DeleteEvent(db *gorm.DB, publicID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		found, err := GetEvent(tx, publicID)
		if err != nil {
			return err
		}
		if found.Kind == models.EventSolo {
			return deleteEvent(tx, found.Solo)
		}
		return deleteEvent(tx, found.Team)
	})
}

// UpdateEventMedia stores new picture and logo paths. Nil arguments leave
// the current value in place. It returns the event and the replaced paths.
func UpdateEventMedia(db *gorm.DB, publicID string, picture, logo *string) (models.FoundEvent, []string, error) {
	found, err := GetEvent(db, publicID)
	if err != nil {
		return found, nil, err
	}

	fields := found.Fields()
	updates := map[string]interface{}{}
	var replaced []string
	if picture != nil {
		if fields.EventPicture != "" {
			replaced = append(replaced, fields.EventPicture)
		}
		updates["event_picture"] = *picture
	}
	if logo != nil {
		if fields.EventLogo != "" {
			replaced = append(replaced, fields.EventLogo)
		}
		updates["event_logo"] = *logo
	}
	if len(updates) == 0 {
		return found, nil, nil
	}

	var target interface{} = found.Solo
	if found.Kind == models.EventTeam {
		target = found.Team
	}
	if err := db.Model(target).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return found, nil, err
	}

	found, err = GetEvent(db, publicID)
	return found, replaced, err
}

func eventFields(req *EventRequest, valid *ValidatedEvent) models.EventFields {
	fields := models.EventFields{
		Title:           req.Title,
		Description:     req.Description,
		EventPicture:    req.EventPicture,
		EventLogo:       req.EventLogo,
		StartDate:       valid.StartDate,
		EndDate:         valid.EndDate,
		StartTime:       valid.StartTime,
		EndTime:         valid.EndTime,
		Venue:           req.Venue,
		MaxParticipants: *req.MaxParticipants,
		ReservedSlots:   *req.ReservedSlots,
		TeamEvent:       *req.TeamEvent,
	}
	if req.PublicID != nil {
		fields.PublicID = *req.PublicID
	}
	return fields
}

func teamSizes(req *EventRequest) (int, int, error) {
	if req.MinTeamSize == nil || req.MaxTeamSize == nil {
		return 0, 0, ErrTeamSizeMissing
	}
	if *req.MaxTeamSize < *req.MinTeamSize {
		return 0, 0, ErrTeamSizeOrder
	}
	return *req.MinTeamSize, *req.MaxTeamSize, nil
}

// checkFree reports conflict when value is already stored in column of
// model's table. Empty values are never checked.
func checkFree(tx *gorm.DB, model interface{}, column, value string, conflict *APIError) error {
	if value == "" {
		return nil
	}
	taken, err := exists(tx, model, column, value)
	if err != nil {
		return err
	}
	if taken {
		return conflict
	}
	return nil
}

func exists(tx *gorm.DB, model interface{}, column, value string) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// insertEvent creates the row without touching associations. A unique
// violation on public_id gets its own message; any other one is reported as
// titleConflict.
func insertEvent(tx *gorm.DB, event interface{}, titleConflict *APIError) error {
	return eventWriteError(event, tx.Omit(clause.Associations).Create(event).Error, titleConflict)
}

func saveEvent(tx *gorm.DB, event interface{}, titleConflict *APIError) error {
	return eventWriteError(event, tx.Omit(clause.Associations).Save(event).Error, titleConflict)
}

func eventWriteError(event interface{}, err error, titleConflict *APIError) error {
	switch {
	case err == nil:
		return nil
	case uniqueViolationOn(err, "public_id"):
		if _, isTeam := event.(*models.TeamEvent); isTeam {
			return ErrTeamPublicIDExists
		}
		return ErrSoloPublicIDExists
	case isUniqueViolation(err):
		return titleConflict
	}
	return err
}

// attachRelations replaces the event's categories, and its tags when the
// request carried a tags field. Without one, existing tags are cleared.
func attachRelations(tx *gorm.DB, event interface{}, valid *ValidatedEvent) error {
	if err := tx.Model(event).Association("Categories").Replace(valid.Categories); err != nil {
		return err
	}
	if valid.HasTags && len(valid.Tags) > 0 {
		return tx.Model(event).Association("Tags").Replace(valid.Tags)
	}
	return tx.Model(event).Association("Tags").Clear()
}

func deleteEvent(tx *gorm.DB, event interface{}) error {
	if err := tx.Model(event).Association("Categories").Clear(); err != nil {
		return err
	}
	if err := tx.Model(event).Association("Tags").Clear(); err != nil {
		return err
	}
	return tx.Delete(event).Error
}
