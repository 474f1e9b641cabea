package gorm

import (
	"time"

	"helo-luxury-air/portal/internal/constants"
)

type AddOns struct {
	GroundTransportation bool `gorm:"column:ground_transportation" json:"groundTransportation"`
	Catering             bool `gorm:"column:catering" json:"catering"`
	ConciergeService     bool `gorm:"column:concierge_service" json:"conciergeService"`
}

// Count is the number of selected add-ons.
func (a AddOns) Count() int {
	n := 0
	for _, on := range []bool{a.GroundTransportation, a.Catering, a.ConciergeService} {
		if on {
			n++
		}
	}
	return n
}

type Booking struct {
	ID              string                  `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	UserID          string                  `gorm:"column:user_id;index" json:"userId"`
	CustomerName    string                  `gorm:"column:customer_name" json:"customerName"`
	CustomerEmail   string                  `gorm:"column:customer_email" json:"customerEmail"`
	PickupLocation  Location                `gorm:"embedded;embeddedPrefix:pickup_" json:"pickupLocation"`
	DropoffLocation Location                `gorm:"embedded;embeddedPrefix:dropoff_" json:"dropoffLocation"`
	DepartureDate   string                  `gorm:"column:departure_date" json:"departureDate"`
	DepartureTime   string                  `gorm:"column:departure_time" json:"departureTime"`
	PassengerCount  int                     `gorm:"column:passenger_count" json:"passengerCount"`
	HelicopterID    string                  `gorm:"column:helicopter_id;index" json:"helicopterId"`
	AddOns          AddOns                  `gorm:"embedded;embeddedPrefix:addon_" json:"addOns"`
	SpecialRequests string                  `gorm:"column:special_requests" json:"specialRequests"`
	Price           int64                   `gorm:"column:price" json:"price"`
	Status          constants.BookingStatus `gorm:"column:status;type:varchar(16);index" json:"status"`
	CreatedAt       time.Time               `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt       time.Time               `gorm:"column:updated_at" json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}
