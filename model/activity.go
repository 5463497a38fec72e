package model

import (
	"time"

	"teamop.dk/bosted/utils"
)

type Activity struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	StartDateTime string  `json:"startDateTime"`
	EndDateTime   string  `json:"endDateTime"`
	LocationID    *string `json:"locationId,omitempty"`

	// populated by enrichment only
	SubLocationName *string `json:"-"`
	RegisteredUsers []User  `json:"-"`
}

func (a Activity) StartTime() (time.Time, error) {
	return utils.ParseLocalDateTime(a.StartDateTime)
}

func (a Activity) EndTime() (time.Time, error) {
	return utils.ParseLocalDateTime(a.EndDateTime)
}

func (a Activity) IsToday(now time.Time) bool {
	start, err := a.StartTime()
	if err != nil {
		return false
	}
	return utils.SameDay(start, now)
}

// IsUpcoming is true while the activity has not ended yet. The start time
// is deliberately not consulted.
func (a Activity) IsUpcoming(now time.Time) bool {
	end, err := a.EndTime()
	if err != nil {
		return false
	}
	return end.After(now)
}
