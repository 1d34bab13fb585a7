package services

import (
	"testing"

	"github.com/farellandr/techfesia/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewDB(t)
	require.NoError(t, SeedRoles(db))
	return db
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func names(values ...string) *[]string {
	if values == nil {
		values = []string{}
	}
	return &values
}

func soloRequest(title string) *EventRequest {
	return &EventRequest{
		Title:           title,
		Description:     "An event",
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-02",
		StartTime:       "10:00",
		EndTime:         "18:00",
		Venue:           "Main Hall",
		MaxParticipants: intPtr(100),
		ReservedSlots:   intPtr(10),
		TeamEvent:       boolPtr(false),
	}
}

func teamRequest(title string) *EventRequest {
	req := soloRequest(title)
	req.TeamEvent = boolPtr(true)
	req.MinTeamSize = intPtr(2)
	req.MaxTeamSize = intPtr(4)
	return req
}

func mustCreateTag(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	_, err := CreateTag(db, name, name+" tag")
	require.NoError(t, err)
}

func mustCreateCategory(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	_, err := CreateCategory(db, name, name+" category")
	require.NoError(t, err)
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, message, apiErr.Message)
}
