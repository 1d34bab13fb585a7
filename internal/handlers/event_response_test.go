package handlers

import (
	"encoding/json"
	"testing"

	"github.com/farellandr/techfesia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoundEventResponse(t *testing.T) {
	fields := models.EventFields{
		PublicID:        "robo",
		Title:           "Robo Wars",
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-02",
		StartTime:       "10:00",
		EndTime:         "17:30",
		MaxParticipants: 40,
		ReservedSlots:   4,
	}

	t.Run("solo", func(t *testing.T) {
		solo := &models.SoloEvent{EventFields: fields, Categories: []models.Category{{Name: "Others"}}}
		raw, err := json.Marshal(foundEventResponse(models.FoundEvent{Kind: models.EventSolo, Solo: solo}))
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "robo", out["public_id"])
		assert.Equal(t, []interface{}{"Others"}, out["category"])
		assert.Equal(t, []interface{}{}, out["tags"])
		assert.NotContains(t, out, "min_team_size")
		assert.NotContains(t, out, "max_team_size")
	})

	t.Run("team", func(t *testing.T) {
		fields.TeamEvent = true
		team := &models.TeamEvent{
			EventFields: fields,
			MinTeamSize: 2,
			MaxTeamSize: 3,
			Tags:        []models.Tag{{Name: "robotics"}, {Name: "hardware"}},
		}
		resp := foundEventResponse(models.FoundEvent{Kind: models.EventTeam, Team: team})

		assert.True(t, resp.TeamEvent)
		require.NotNil(t, resp.MinTeamSize)
		require.NotNil(t, resp.MaxTeamSize)
		assert.Equal(t, 2, *resp.MinTeamSize)
		assert.Equal(t, 3, *resp.MaxTeamSize)
		assert.Equal(t, []string{"robotics", "hardware"}, resp.Tags)
		assert.Empty(t, resp.Category)
	})
}
