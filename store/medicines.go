package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamop.dk/bosted/model"
)

func orderedReminders(db *gorm.DB) *gorm.DB {
	return db.Order("hour, minute, id")
}

// ListMedicines returns every medicine by name with its reminders.
func (s *Store) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := s.db.WithContext(ctx).
		Preload("Reminders", orderedReminders).
		Order("name, id").
		Find(&medicines).Error
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

func (s *Store) GetMedicine(ctx context.Context, id int) (*model.Medicine, error) {
	var medicine model.Medicine
	err := s.db.WithContext(ctx).
		Preload("Reminders", orderedReminders).
		First(&medicine, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &medicine, nil
}

// CreateMedicine inserts the medicine together with its reminders. Reminders
// without a unit get the default dose unit.
func (s *Store) CreateMedicine(ctx context.Context, medicine *model.Medicine) error {
	medicine.ID = 0
	for i := range medicine.Reminders {
		medicine.Reminders[i].ID = 0
		if medicine.Reminders[i].Unit == "" {
			medicine.Reminders[i].Unit = model.DefaultDoseUnit
		}
	}
	if err := s.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return fmt.Errorf("create medicine: %w", err)
	}
	return nil
}

// ReplaceReminders swaps the full reminder schedule of a medicine.
func (s *Store) ReplaceReminders(ctx context.Context, medicineID int, reminders []model.Reminder) ([]model.Reminder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Medicine{}, medicineID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("medicine_id = ?", medicineID).Delete(&model.Reminder{}).Error; err != nil {
			return err
		}
		if len(reminders) == 0 {
			return nil
		}
		for i := range reminders {
			reminders[i].ID = 0
			reminders[i].MedicineID = medicineID
			if reminders[i].Unit == "" {
				reminders[i].Unit = model.DefaultDoseUnit
			}
		}
		return tx.Create(&reminders).Error
	})
	if err != nil {
		return nil, fmt.Errorf("replace reminders of medicine %d: %w", medicineID, err)
	}
	return reminders, nil
}

func (s *Store) UpdateSnoozeType(ctx context.Context, medicineID int, snooze model.SnoozeType) (*model.Medicine, error) {
	medicine, err := s.GetMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Medicine{ID: medicine.ID}).Update("snooze_type", snooze).Error; err != nil {
		return nil, fmt.Errorf("update snooze type: %w", err)
	}
	medicine.SnoozeType = snooze
	return medicine, nil
}

// DeleteMedicine removes the medicine and its reminders.
func (s *Store) DeleteMedicine(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medicine_id = ?", id).Delete(&model.Reminder{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Medicine{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
