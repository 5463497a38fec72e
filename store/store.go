package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"teamop.dk/bosted/model"
)

var ErrNotFound = errors.New("record not found")

// Models lists the tables the store owns, in migration order.
func Models() []any {
	return []any{&model.Medicine{}, &model.Reminder{}, &model.ToothbrushReminder{}}
}

// Store is the local gorm backed store for reminder data. Nothing here is
// synced with Directus.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(Models()...)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
