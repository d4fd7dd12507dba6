package sqlite

import (
	"time"

	"legalpad/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Init opens (or creates) the database at the given path and migrates the
// schema. Use ":memory:" in tests.
func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.ClientNote{},
		&entity.Appointment{},
		&entity.Note{},
		&entity.NoteAttachment{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
