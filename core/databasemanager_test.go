package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamop.dk/bosted/model"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogLevelError,
		"WARN":    LogLevelWarn,
		"warning": LogLevelWarn,
		"info":    LogLevelInfo,
		"debug":   LogLevelInfo,
		"":        LogLevelSilent,
		"verbose": LogLevelSilent,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector("sqlite::memory:").Name())
	assert.Equal(t, "mysql", Dialector("user:pass@tcp(localhost:3306)/bosted").Name())
}

func TestDatabaseManagerMigrate(t *testing.T) {
	dm, err := NewDatabaseManager("sqlite::memory:", 1, LogLevelSilent)
	require.NoError(t, err)
	t.Cleanup(func() { dm.Close() })

	ctx := context.Background()
	require.NoError(t, dm.Migrate(ctx, &model.Medicine{}, &model.Reminder{}))

	err = dm.Exec(ctx, func(db *gorm.DB) error {
		assert.True(t, db.Migrator().HasTable(&model.Medicine{}))
		assert.True(t, db.Migrator().HasTable(&model.Reminder{}))
		return nil
	})
	require.NoError(t, err)
}
