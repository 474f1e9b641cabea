package constants

import (
	"database/sql/driver"
	"fmt"
)

// BookingStatus is the lifecycle state of a charter booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) String() string { return string(s) }

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransitionTo reports whether s -> next is a legal move.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s *BookingStatus) Scan(src interface{}) error {
	v, err := scanString("BookingStatus", src)
	if err != nil {
		return err
	}
	*s = BookingStatus(v)
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) { return string(s), nil }

// AircraftStatus is the operational state of a helicopter
type AircraftStatus string

const (
	AircraftAvailable    AircraftStatus = "available"
	AircraftInUse        AircraftStatus = "in_use"
	AircraftMaintenance  AircraftStatus = "maintenance"
	AircraftOutOfService AircraftStatus = "out_of_service"
)

func (s AircraftStatus) String() string { return string(s) }

func (s AircraftStatus) Valid() bool {
	switch s {
	case AircraftAvailable, AircraftInUse, AircraftMaintenance, AircraftOutOfService:
		return true
	}
	return false
}

func (s *AircraftStatus) Scan(src interface{}) error {
	v, err := scanString("AircraftStatus", src)
	if err != nil {
		return err
	}
	*s = AircraftStatus(v)
	return nil
}

func (s AircraftStatus) Value() (driver.Value, error) { return string(s), nil }

type (
	LocationType      string
	SavedLocationType string
	PaymentMethodType string
	CardBrand         string
)

const (
	LocationHeliport LocationType = "heliport"
	LocationAirport  LocationType = "airport"
	LocationCustom   LocationType = "custom"

	SavedLocationHome     SavedLocationType = "home"
	SavedLocationWork     SavedLocationType = "work"
	SavedLocationFavorite SavedLocationType = "favorite"
	SavedLocationOther    SavedLocationType = "other"

	PaymentCreditCard  PaymentMethodType = "credit_card"
	PaymentDebitCard   PaymentMethodType = "debit_card"
	PaymentBankAccount PaymentMethodType = "bank_account"

	CardVisa       CardBrand = "visa"
	CardMastercard CardBrand = "mastercard"
	CardAmex       CardBrand = "amex"
	CardDiscover   CardBrand = "discover"
)

func (t SavedLocationType) Valid() bool {
	switch t {
	case SavedLocationHome, SavedLocationWork, SavedLocationFavorite, SavedLocationOther:
		return true
	}
	return false
}

func (t PaymentMethodType) Valid() bool {
	switch t {
	case PaymentCreditCard, PaymentDebitCard, PaymentBankAccount:
		return true
	}
	return false
}

// Timeframe selects the analytics window
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// ParseTimeframe defaults to a week when s is empty.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "":
		return TimeframeWeek, nil
	case TimeframeWeek, TimeframeMonth, TimeframeYear:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}
