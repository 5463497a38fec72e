package model

import (
	"fmt"
	"time"
)

type ToothbrushReminder struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	IsEnabled bool      `json:"isEnabled" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ToothbrushReminder) TableName() string {
	return "bosted_toothbrush_reminders"
}

func (r ToothbrushReminder) TimeString() string {
	return FormatClock(r.Hour, r.Minute)
}

func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
