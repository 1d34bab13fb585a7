package handlers

import "github.com/farellandr/techfesia/internal/models"

type EventResponse struct {
	PublicID        string   `json:"public_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	EventPicture    string   `json:"event_picture"`
	EventLogo       string   `json:"event_logo"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Venue           string   `json:"venue"`
	MaxParticipants int      `json:"max_participants"`
	ReservedSlots   int      `json:"reserved_slots"`
	TeamEvent       bool     `json:"team_event"`
	MinTeamSize     *int     `json:"min_team_size,omitempty"`
	MaxTeamSize     *int     `json:"max_team_size,omitempty"`
	Category        []string `json:"category"`
	Tags            []string `json:"tags"`
}

func newEventResponse(fields models.EventFields, categories []models.Category, tags []models.Tag) EventResponse {
	resp := EventResponse{
		PublicID:        fields.PublicID,
		Title:           fields.Title,
		Description:     fields.Description,
		EventPicture:    fields.EventPicture,
		EventLogo:       fields.EventLogo,
		StartDate:       fields.StartDate,
		EndDate:         fields.EndDate,
		StartTime:       fields.StartTime,
		EndTime:         fields.EndTime,
		Venue:           fields.Venue,
		MaxParticipants: fields.MaxParticipants,
		ReservedSlots:   fields.ReservedSlots,
		TeamEvent:       fields.TeamEvent,
		Category:        make([]string, 0, len(categories)),
		Tags:            make([]string, 0, len(tags)),
	}
	for _, category := range categories {
		resp.Category = append(resp.Category, category.Name)
	}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, tag.Name)
	}
	return resp
}

func soloEventResponse(event *models.SoloEvent) EventResponse {
	return newEventResponse(event.EventFields, event.Categories, event.Tags)
}

func teamEventResponse(event *models.TeamEvent) EventResponse {
	resp := newEventResponse(event.EventFields, event.Categories, event.Tags)
	minSize, maxSize := event.MinTeamSize, event.MaxTeamSize
	resp.MinTeamSize = &minSize
	resp.MaxTeamSize = &maxSize
	return resp
}

func foundEventResponse(found models.FoundEvent) EventResponse {
	if found.Kind == models.EventTeam {
		return teamEventResponse(found.Team)
	}
	return soloEventResponse(found.Solo)
}
