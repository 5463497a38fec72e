package model

import (
	"time"

	"teamop.dk/bosted/utils"
)

// TaskTypeShift tags the taskSchedule rows that are staff shifts. The same
// table carries other task types which are never surfaced as shifts.
const TaskTypeShift = "shift"

type Shift struct {
	ID              int     `json:"id"`
	StartDateTime   string  `json:"startDateTime"` // 2006-01-02T15:04:05, local time
	EndDateTime     string  `json:"endDateTime"`
	TaskType        string  `json:"taskType"`
	TaskDescription *string `json:"taskDescription,omitempty"`

	// populated by enrichment only
	SubLocationName *string `json:"-"`
	AssignedUsers   []User  `json:"-"`
}

func (s Shift) IsShift() bool {
	return s.TaskType == TaskTypeShift
}

func (s Shift) StartTime() (time.Time, error) {
	return utils.ParseLocalDateTime(s.StartDateTime)
}

func (s Shift) EndTime() (time.Time, error) {
	return utils.ParseLocalDateTime(s.EndDateTime)
}

// IsToday compares the calendar day of the start time with now.
func (s Shift) IsToday(now time.Time) bool {
	start, err := s.StartTime()
	if err != nil {
		return false
	}
	return utils.SameDay(start, now)
}
