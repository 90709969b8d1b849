package postgres

import (
	"time"

	"identity/internal/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultSQLiteDSN = "file:identity.db?_foreign_keys=on"

// OpenSQLite opens a SQLite database. A single connection serializes writers,
// which SQLite requires anyway and which makes transactions behave like row locks.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
