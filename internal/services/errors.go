package services

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failure that is reported to the caller as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func badRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func unprocessable(message string) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Message: message}
}

// ===== Event validation =====
var (
	ErrInvalidStartDate   = badRequest(`Incorrect start_date format, should be "YYYY-MM-DD" or Invalid start_date`)
	ErrInvalidEndDate     = badRequest(`Incorrect end_date format, should be "YYYY-MM-DD" or Invalid end_date`)
	ErrInvalidStartTime   = badRequest(`Incorrect start_time format, should be "HH:MM" or Invalid start_time`)
	ErrInvalidEndTime     = badRequest(`Incorrect end_time format, should be "HH:MM" or Invalid end_time`)
	ErrEndDateBeforeStart = unprocessable("end_date can not be before than start_date of event")
	ErrEndTimeBeforeStart = unprocessable("end_time can not be before than start_time of event")
	ErrReservedSlots      = unprocessable("reserved_slots cannot be greater than max_participants")
)

// ===== Events =====
var (
	ErrEventNotFound        = unprocessable("This event does not exist")
	ErrPublicIDImmutable    = unprocessable("public_id of an event can not be changed")
	ErrSoloPublicIDExists   = unprocessable("Solo event with such public_id already exists")
	ErrTeamPublicIDExists   = unprocessable("Team event with such public_id already exists")
	ErrSoloTitleExists      = unprocessable("Solo event with such title already exists.")
	ErrTeamTitleExists      = unprocessable("Team Event with such title already exists.")
	ErrSoloTitleTaken       = unprocessable("Solo event with such title already exists")
	ErrTeamTitleTaken       = unprocessable("Team event with such title already exists")
	ErrTeamTitleTakenOnEdit = unprocessable("Team event with such title already exists.")
	ErrTeamSizeMissing      = unprocessable("min_team_size and max_team_size parameters are not provided")
	ErrTeamSizeOrder        = unprocessable("max_team_size can not be less than min_team_size")
	ErrUnknownFilterCat     = badRequest("Invalid filtering against non existing category")
	ErrUnknownFilterTag     = badRequest("Invalid filtering against non existing tags")
)

// ===== Tags and categories =====
var (
	ErrTagExists           = unprocessable("Tag already exist.")
	ErrTagNotFound         = unprocessable("Tag does not exist.")
	ErrTagNotFoundOnDelete = unprocessable("This tag does not exist.")
	ErrTagInUse            = unprocessable("Cant delete a tag that is in use.")

	ErrCategoryExists           = unprocessable("This category already exist.")
	ErrCategoryNotFound         = unprocessable("Category does not exist.")
	ErrCategoryNotFoundOnDelete = unprocessable("This category does not exist.")
	ErrCategoryInUse            = unprocessable("Cant delete a category that is in use.")
	ErrDefaultCategory          = unprocessable("It is a default category for events.")
)

// ===== Accounts =====
var (
	ErrUserExists         = unprocessable("User already exists.")
	ErrUserNotFound       = unprocessable("User does not exist.")
	ErrInvalidCredentials = &APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials."}
	ErrInvalidConfirmLink = badRequest("Invalid or expired confirmation link.")
)

func unknownNames(kind string, names []string) *APIError {
	return unprocessable(fmt.Sprintf("The following %s %s do not exist.", kind, quoteList(names)))
}

// quoteList renders names as ['a', 'b'], the format clients of this API parse.
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
