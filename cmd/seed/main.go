package main

import (
	"context"
	"log"
	"os"

	"teamop.dk/bosted/core"
	"teamop.dk/bosted/store"
)

func main() {
	dsn := os.Getenv("BOSTED_DATABASE_DSN") // e.g. root:development@tcp(localhost:3306)/bosted?parseTime=true
	if dsn == "" {
		dsn = "sqlite:bosted.db"
	}

	dm, err := core.NewDatabaseManager(dsn, 1, core.LogLevelInfo)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer dm.Close()

	if err := dm.Migrate(context.Background(), store.Models()...); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Printf("migrated %d tables", len(store.Models()))
}
