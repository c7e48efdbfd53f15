package postgresql

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a db session, retrying for a short while so the service
// survives the database coming up slightly later than the process.
func Connect(connStr string) (db *gorm.DB, err error) {
	retryTicker := time.NewTicker(time.Second * 2)
	defer retryTicker.Stop()

	for range 5 {
		db, err = gorm.Open(postgres.Open(connStr), &gorm.Config{})
		if err == nil {
			break
		}
		<-retryTicker.C
	}

	return
}

// Bootstrap creates the tables, foreign keys and indexes for the given
// models if they do not already exist. Safe to run on every start.
func Bootstrap(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}

func Close(db *gorm.DB) error {
	sqlDb, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDb.Close()
}
