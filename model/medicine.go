package model

import "time"

type ReminderType string

const (
	ReminderTimeOnly        ReminderType = "TIME_ONLY"
	ReminderLocationOnly    ReminderType = "LOCATION_ONLY"
	ReminderTimeAndLocation ReminderType = "TIME_AND_LOCATION"
)

type SnoozeType string

const (
	SnoozeSingle   SnoozeType = "SINGLE"
	Snooze6Minutes SnoozeType = "SNOOZE_6_MIN"
)

const DefaultDoseUnit = "tablet(ter)"

type Medicine struct {
	ID              int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string       `json:"name" gorm:"size:255;not null"`
	TotalDailyDoses int          `json:"totalDailyDoses"`
	LocationEnabled bool         `json:"locationEnabled"`
	LocationName    string       `json:"locationName" gorm:"size:255"`
	LocationLat     *float64     `json:"locationLat,omitempty"`
	LocationLng     *float64     `json:"locationLng,omitempty"`
	ReminderType    ReminderType `json:"reminderType" gorm:"size:32;not null;default:TIME_ONLY"`
	SnoozeType      SnoozeType   `json:"snoozeType" gorm:"size:32;not null;default:SNOOZE_6_MIN"`
	Reminders       []Reminder   `json:"reminders,omitempty" gorm:"foreignKey:MedicineID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Medicine) TableName() string {
	return "bosted_medicines"
}

// UsesTime reports whether the medicine has clock based reminders.
func (m Medicine) UsesTime() bool {
	return m.ReminderType != ReminderLocationOnly
}

type Reminder struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	MedicineID int    `json:"medicineId" gorm:"index;not null"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Dosage     int    `json:"dosage" gorm:"not null;default:1"`
	IsEnabled  bool   `json:"isEnabled" gorm:"not null"`
	Unit       string `json:"unit" gorm:"size:64"`
}

func (Reminder) TableName() string {
	return "bosted_medicine_reminders"
}
