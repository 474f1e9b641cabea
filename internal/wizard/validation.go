package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"helo-luxury-air/portal/internal/constants"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Field keys used in FieldErrors.
const (
	FieldPickup     = "pickupLocationId"
	FieldDropoff    = "dropoffLocationId"
	FieldHelicopter = "helicopterId"
	FieldPassengers = "passengers"
	FieldDate       = "departureDate"
	FieldTime       = "departureTime"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrStepNotReached   = errors.New("step not reached")
	ErrIncomplete       = errors.New("booking draft incomplete")
	ErrAlreadySubmitted = errors.New("booking draft already submitted")
)

// FieldErrors maps a form field to a human readable message.
type FieldErrors map[string]string

// ValidationError blocks advancement from Step.
type ValidationError struct {
	Step   Step
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: step %s: %s", ErrValidation, e.Step, strings.Join(keys, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validateLocations(s LocationsStep, cat *Catalog) FieldErrors {
	errs := FieldErrors{}
	if s.PickupID == "" {
		errs[FieldPickup] = constants.MsgFieldRequired
	} else if _, ok := cat.location(s.PickupID); !ok {
		errs[FieldPickup] = constants.MsgUnknownLocation
	}

	switch {
	case s.DropoffID == "":
		errs[FieldDropoff] = constants.MsgFieldRequired
	case s.DropoffID == s.PickupID:
		errs[FieldDropoff] = constants.MsgSameLocation
	default:
		if _, ok := cat.location(s.DropoffID); !ok {
			errs[FieldDropoff] = constants.MsgUnknownLocation
		}
	}
	return errs
}

func validateAircraft(s AircraftStep, cat *Catalog) FieldErrors {
	errs := FieldErrors{}
	if s.HelicopterID == "" {
		errs[FieldHelicopter] = constants.MsgFieldRequired
	} else if _, ok := cat.helicopter(s.HelicopterID); !ok {
		errs[FieldHelicopter] = constants.MsgUnknownHelicopter
	}
	if s.Passengers < MinPassengers || s.Passengers > MaxPassengers {
		errs[FieldPassengers] = constants.MsgPassengersOutOfRange
	}
	return errs
}

// validateSchedule compares calendar dates only; time of day is ignored.
func validateSchedule(s ScheduleStep, now time.Time) FieldErrors {
	errs := FieldErrors{}
	if s.Date == "" {
		errs[FieldDate] = constants.MsgFieldRequired
	} else if d, err := time.ParseInLocation(DateLayout, s.Date, now.Location()); err != nil {
		errs[FieldDate] = constants.MsgInvalidDate
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if d.Before(today) {
			errs[FieldDate] = constants.MsgDateInPast
		}
	}

	if s.Time == "" {
		errs[FieldTime] = constants.MsgFieldRequired
	} else if _, err := time.Parse(TimeLayout, s.Time); err != nil {
		errs[FieldTime] = constants.MsgInvalidTime
	}
	return errs
}
