package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the row changed underneath a conditional update.
	ErrConflict = errors.New("record changed concurrently")
	// ErrDuplicate means a unique column already holds the value.
	ErrDuplicate = errors.New("record already exists")
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func duplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
