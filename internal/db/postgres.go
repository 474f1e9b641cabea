package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// ConnectPostgres opens a standalone sqlx pool through lib/pq, retrying while
// the database comes up.
func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// OpenSQLX returns the sqlx handle used for raw aggregate queries. For sqlite
// it shares GORM's pool so the in-memory database is the same one.
func OpenSQLX(orm *gorm.DB, driver, dsn string) (*sqlx.DB, error) {
	if driver == "postgres" {
		return ConnectPostgres(dsn)
	}
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}
