package gorm

import "helo-luxury-air/portal/internal/constants"

type Coordinates struct {
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
}

// Location is a pickup or dropoff snapshot; bookings embed it so later edits
// to a saved location never rewrite history.
type Location struct {
	ID          string                 `gorm:"column:id" json:"id"`
	Name        string                 `gorm:"column:name" json:"name"`
	Address     string                 `gorm:"column:address" json:"address"`
	Coordinates Coordinates            `gorm:"embedded" json:"coordinates"`
	Type        constants.LocationType `gorm:"column:type;type:varchar(16)" json:"type"`
}
