package core

import (
	"context"
	"fmt"
	"strings"

	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/notification"
)

const (
	toothbrushTitle = "Tandbørstning"
	toothbrushBody  = "Tid til at børste tænder! Scan QR-koden på dit badeværelsesspejl."
	medicineTitle   = "Tid til medicin"
)

type ReminderStore interface {
	ListMedicines(ctx context.Context) ([]model.Medicine, error)
	GetMedicine(ctx context.Context, id int) (*model.Medicine, error)
	CreateMedicine(ctx context.Context, medicine *model.Medicine) error
	ReplaceReminders(ctx context.Context, medicineID int, reminders []model.Reminder) ([]model.Reminder, error)
	UpdateSnoozeType(ctx context.Context, medicineID int, snooze model.SnoozeType) (*model.Medicine, error)
	DeleteMedicine(ctx context.Context, id int) error

	ListToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error)
	EnabledToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error)
	CreateToothbrushReminder(ctx context.Context, hour, minute int) (*model.ToothbrushReminder, error)
	SetToothbrushReminderEnabled(ctx context.Context, id string, enabled bool) (*model.ToothbrushReminder, error)
	DeleteToothbrushReminder(ctx context.Context, id string) error
}

// ReminderService keeps the stored reminders and the notification schedule
// in step: enabled reminders are scheduled, everything else is cancelled.
type ReminderService struct {
	store     ReminderStore
	scheduler notification.Scheduler
}

func NewReminderService(store ReminderStore, scheduler notification.Scheduler) *ReminderService {
	return &ReminderService{store: store, scheduler: scheduler}
}

func ToothbrushNotificationID(id string) string {
	return "toothbrush_" + id
}

func medicinePrefix(medicineID int) string {
	return fmt.Sprintf("medicine_%d_", medicineID)
}

func MedicineNotificationID(medicineID, reminderID int) string {
	return fmt.Sprintf("%sreminder_%d", medicinePrefix(medicineID), reminderID)
}

// VerifyToothbrushScan compares a decoded QR code with the expected code of
// the bathroom mirror. Decoding the image happens on the device.
func VerifyToothbrushScan(decoded, expected string) bool {
	expected = strings.TrimSpace(expected)
	return expected != "" && strings.TrimSpace(decoded) == expected
}

// Restore schedules every enabled reminder, e.g. after a restart.
func (s *ReminderService) Restore(ctx context.Context) error {
	toothbrush, err := s.store.EnabledToothbrushReminders(ctx)
	if err != nil {
		return err
	}
	for _, reminder := range toothbrush {
		if err := s.scheduleToothbrush(ctx, reminder); err != nil {
			return err
		}
	}

	medicines, err := s.store.ListMedicines(ctx)
	if err != nil {
		return err
	}
	for _, medicine := range medicines {
		if err := s.scheduleMedicine(ctx, medicine); err != nil {
			return err
		}
	}

	logging.FromContext(ctx).Info("reminders restored",
		"toothbrush", len(toothbrush),
		"medicines", len(medicines),
	)
	return nil
}

func (s *ReminderService) ToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error) {
	return s.store.ListToothbrushReminders(ctx)
}

func (s *ReminderService) AddToothbrushReminder(ctx context.Context, hour, minute int) (*model.ToothbrushReminder, error) {
	if err := (notification.Trigger{Hour: hour, Minute: minute}).Validate(); err != nil {
		return nil, err
	}
	reminder, err := s.store.CreateToothbrushReminder(ctx, hour, minute)
	if err != nil {
		return nil, err
	}
	return reminder, s.scheduleToothbrush(ctx, *reminder)
}

func (s *ReminderService) SetToothbrushReminderEnabled(ctx context.Context, id string, enabled bool) (*model.ToothbrushReminder, error) {
	reminder, err := s.store.SetToothbrushReminderEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}
	if enabled {
		return reminder, s.scheduleToothbrush(ctx, *reminder)
	}
	return reminder, s.scheduler.Cancel(ctx, ToothbrushNotificationID(id))
}

func (s *ReminderService) DeleteToothbrushReminder(ctx context.Context, id string) error {
	if err := s.store.DeleteToothbrushReminder(ctx, id); err != nil {
		return err
	}
	return s.scheduler.Cancel(ctx, ToothbrushNotificationID(id))
}

func (s *ReminderService) Medicines(ctx context.Context) ([]model.Medicine, error) {
	return s.store.ListMedicines(ctx)
}

func (s *ReminderService) CreateMedicine(ctx context.Context, medicine *model.Medicine) error {
	for _, reminder := range medicine.Reminders {
		if err := (notification.Trigger{Hour: reminder.Hour, Minute: reminder.Minute}).Validate(); err != nil {
			return err
		}
	}
	if err := s.store.CreateMedicine(ctx, medicine); err != nil {
		return err
	}
	return s.scheduleMedicine(ctx, *medicine)
}

func (s *ReminderService) ReplaceMedicineReminders(ctx context.Context, medicineID int, reminders []model.Reminder) (*model.Medicine, error) {
	for _, reminder := range reminders {
		if err := (notification.Trigger{Hour: reminder.Hour, Minute: reminder.Minute}).Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := s.store.ReplaceReminders(ctx, medicineID, reminders); err != nil {
		return nil, err
	}
	return s.reschedule(ctx, medicineID)
}

func (s *ReminderService) UpdateMedicineSnoozeType(ctx context.Context, medicineID int, snooze model.SnoozeType) (*model.Medicine, error) {
	if _, err := s.store.UpdateSnoozeType(ctx, medicineID, snooze); err != nil {
		return nil, err
	}
	return s.reschedule(ctx, medicineID)
}

func (s *ReminderService) DeleteMedicine(ctx context.Context, medicineID int) error {
	if err := s.store.DeleteMedicine(ctx, medicineID); err != nil {
		return err
	}
	return s.scheduler.CancelPrefix(ctx, medicinePrefix(medicineID))
}

func (s *ReminderService) reschedule(ctx context.Context, medicineID int) (*model.Medicine, error) {
	medicine, err := s.store.GetMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	return medicine, s.scheduleMedicine(ctx, *medicine)
}

func (s *ReminderService) scheduleToothbrush(ctx context.Context, reminder model.ToothbrushReminder) error {
	return s.scheduler.Schedule(ctx,
		ToothbrushNotificationID(reminder.ID),
		notification.Trigger{Hour: reminder.Hour, Minute: reminder.Minute},
		notification.Payload{
			Title: toothbrushTitle,
			Body:  toothbrushBody,
			Data:  map[string]string{"reminderId": reminder.ID},
		},
	)
}

// scheduleMedicine replaces whatever was scheduled for the medicine with its
// enabled clock reminders. Location only medicines schedule nothing.
func (s *ReminderService) scheduleMedicine(ctx context.Context, medicine model.Medicine) error {
	if err := s.scheduler.CancelPrefix(ctx, medicinePrefix(medicine.ID)); err != nil {
		return err
	}
	if !medicine.UsesTime() {
		return nil
	}

	for _, reminder := range medicine.Reminders {
		if !reminder.IsEnabled {
			continue
		}
		err := s.scheduler.Schedule(ctx,
			MedicineNotificationID(medicine.ID, reminder.ID),
			notification.Trigger{Hour: reminder.Hour, Minute: reminder.Minute},
			notification.Payload{
				Title: medicineTitle,
				Body:  fmt.Sprintf("%s - %d %s", medicine.Name, reminder.Dosage, reminder.Unit),
				Data: map[string]string{
					"medicineId": fmt.Sprint(medicine.ID),
					"reminderId": fmt.Sprint(reminder.ID),
					"snoozeType": string(medicine.SnoozeType),
				},
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
