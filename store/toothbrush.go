package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"teamop.dk/bosted/model"
)

const toothbrushNamePrefix = "Tandbørstning"

func (s *Store) ListToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error) {
	var reminders []model.ToothbrushReminder
	if err := s.db.WithContext(ctx).Order("hour, minute, created_at").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list toothbrush reminders: %w", err)
	}
	return reminders, nil
}

// EnabledToothbrushReminders is used to restore the schedule on startup.
func (s *Store) EnabledToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error) {
	var reminders []model.ToothbrushReminder
	err := s.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("hour, minute, created_at").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list enabled toothbrush reminders: %w", err)
	}
	return reminders, nil
}

func (s *Store) GetToothbrushReminder(ctx context.Context, id string) (*model.ToothbrushReminder, error) {
	var reminder model.ToothbrushReminder
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error; err != nil {
		return nil, notFound(err)
	}
	return &reminder, nil
}

// CreateToothbrushReminder stores an enabled reminder named after its time.
func (s *Store) CreateToothbrushReminder(ctx context.Context, hour, minute int) (*model.ToothbrushReminder, error) {
	reminder := &model.ToothbrushReminder{
		ID:        uuid.New().String(),
		Name:      toothbrushNamePrefix + " " + model.FormatClock(hour, minute),
		Hour:      hour,
		Minute:    minute,
		IsEnabled: true,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, fmt.Errorf("create toothbrush reminder: %w", err)
	}
	return reminder, nil
}

func (s *Store) SetToothbrushReminderEnabled(ctx context.Context, id string, enabled bool) (*model.ToothbrushReminder, error) {
	reminder, err := s.GetToothbrushReminder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(reminder).Update("is_enabled", enabled).Error; err != nil {
		return nil, fmt.Errorf("update toothbrush reminder: %w", err)
	}
	reminder.IsEnabled = enabled
	return reminder, nil
}

func (s *Store) DeleteToothbrushReminder(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ToothbrushReminder{})
	if result.Error != nil {
		return fmt.Errorf("delete toothbrush reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
