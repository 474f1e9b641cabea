package wizard

import (
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
)

// Step is the wizard cursor.
type Step int

const (
	StepLocations Step = iota + 1
	StepAircraft
	StepSchedule
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepLocations:
		return "locations"
	case StepAircraft:
		return "aircraft"
	case StepSchedule:
		return "schedule"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func clampStep(s Step) Step {
	if s < StepLocations {
		return StepLocations
	}
	if s > StepReview {
		return StepReview
	}
	return s
}

type LocationsStep struct {
	PickupID  string `json:"pickupLocationId"`
	DropoffID string `json:"dropoffLocationId"`
}

type AircraftStep struct {
	HelicopterID string `json:"helicopterId"`
	Passengers   int    `json:"passengers"`
}

type ScheduleStep struct {
	Date            string            `json:"departureDate"`
	Time            string            `json:"departureTime"`
	AddOns          gormModels.AddOns `json:"addOns"`
	SpecialRequests string            `json:"specialRequests"`
}

// Catalog is the reference data a member picks from.
type Catalog struct {
	Locations   []gormModels.SavedLocation `json:"locations"`
	Helicopters []gormModels.Helicopter    `json:"helicopters"`
}

func (c *Catalog) location(id string) (gormModels.SavedLocation, bool) {
	if c == nil {
		return gormModels.SavedLocation{}, false
	}
	for _, l := range c.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return gormModels.SavedLocation{}, false
}

func (c *Catalog) helicopter(id string) (gormModels.Helicopter, bool) {
	if c == nil {
		return gormModels.Helicopter{}, false
	}
	for _, h := range c.Helicopters {
		if h.ID == id {
			return h, true
		}
	}
	return gormModels.Helicopter{}, false
}

// Wizard is the four-step booking form. Each step owns only its own fields
// and a later step cannot be edited before the cursor has reached it.
type Wizard struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time

	step      Step
	locations LocationsStep
	aircraft  AircraftStep
	schedule  ScheduleStep
	catalog   Catalog
	errors    FieldErrors
	price     int64
	submitted bool
}

// New starts a draft at the locations step with one passenger.
func New(id, userID string, catalog Catalog, now time.Time) *Wizard {
	w := &Wizard{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		step:      StepLocations,
		aircraft:  AircraftStep{Passengers: MinPassengers},
		catalog:   catalog,
		errors:    FieldErrors{},
	}
	w.reprice()
	return w
}

func (w *Wizard) Step() Step { return w.step }
func (w *Wizard) Locations() LocationsStep { return w.locations }
func (w *Wizard) Aircraft() AircraftStep { return w.aircraft }
func (w *Wizard) Schedule() ScheduleStep { return w.schedule }
func (w *Wizard) EstimatedPrice() int64 { return w.price }
func (w *Wizard) Submitted() bool { return w.submitted }
func (w *Wizard) Catalog() Catalog { return w.catalog }

// Errors returns a copy of the current field errors.
func (w *Wizard) Errors() FieldErrors {
	out := make(FieldErrors, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

// SetLocations is always allowed; the locations step is the entry point.
func (w *Wizard) SetLocations(s LocationsStep, now time.Time) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	w.locations = s
	w.clearErrors(FieldPickup, FieldDropoff)
	w.touch(now)
	return nil
}

// SetAircraft clamps passengers into range instead of rejecting them.
func (w *Wizard) SetAircraft(s AircraftStep, now time.Time) error {
	if err := w.editable(StepAircraft); err != nil {
		return err
	}
	s.Passengers = ClampPassengers(s.Passengers)
	w.aircraft = s
	w.clearErrors(FieldHelicopter, FieldPassengers)
	w.reprice()
	w.touch(now)
	return nil
}

func (w *Wizard) SetSchedule(s ScheduleStep, now time.Time) error {
	if err := w.editable(StepSchedule); err != nil {
		return err
	}
	w.schedule = s
	w.clearErrors(FieldDate, FieldTime)
	w.reprice()
	w.touch(now)
	return nil
}

// Validate checks one step. The review step re-checks the three before it.
func (w *Wizard) Validate(step Step, now time.Time) FieldErrors {
	switch step {
	case StepLocations:
		return validateLocations(w.locations, &w.catalog)
	case StepAircraft:
		return validateAircraft(w.aircraft, &w.catalog)
	case StepSchedule:
		return validateSchedule(w.schedule, now)
	case StepReview:
		all := FieldErrors{}
		for _, s := range []Step{StepLocations, StepAircraft, StepSchedule} {
			for k, v := range w.Validate(s, now) {
				all[k] = v
			}
		}
		return all
	}
	return FieldErrors{}
}

// Next advances only when the current step validates. On failure the cursor
// stays put and the field errors are recorded.
func (w *Wizard) Next(now time.Time) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	errs := w.Validate(w.step, now)
	if len(errs) > 0 {
		w.errors = errs
		w.touch(now)
		return &ValidationError{Step: w.step, Fields: errs}
	}
	w.errors = FieldErrors{}
	w.step = clampStep(w.step + 1)
	w.touch(now)
	return nil
}

// Back never validates.
func (w *Wizard) Back(now time.Time) {
	w.step = clampStep(w.step - 1)
	w.errors = FieldErrors{}
	w.touch(now)
}

// Submission is the confirmed selection, still by id.
type Submission struct {
	PickupID        string
	DropoffID       string
	HelicopterID    string
	Passengers      int
	Date            string
	Time            string
	AddOns          gormModels.AddOns
	SpecialRequests string
}

// Submission returns the payload to book, or ErrIncomplete when the draft is
// not on the review step or any step fails validation.
func (w *Wizard) Submission(now time.Time) (*Submission, error) {
	if w.submitted {
		return nil, ErrAlreadySubmitted
	}
	if w.step != StepReview {
		return nil, fmt.Errorf("%w: on step %s", ErrIncomplete, w.step)
	}
	if errs := w.Validate(StepReview, now); len(errs) > 0 {
		w.errors = errs
		return nil, fmt.Errorf("%w: %w", ErrIncomplete, &ValidationError{Step: StepReview, Fields: errs})
	}
	return &Submission{
		PickupID:        w.locations.PickupID,
		DropoffID:       w.locations.DropoffID,
		HelicopterID:    w.aircraft.HelicopterID,
		Passengers:      w.aircraft.Passengers,
		Date:            w.schedule.Date,
		Time:            w.schedule.Time,
		AddOns:          w.schedule.AddOns,
		SpecialRequests: w.schedule.SpecialRequests,
	}, nil
}

// MarkSubmitted freezes the draft once its booking exists.
func (w *Wizard) MarkSubmitted(now time.Time) {
	w.submitted = true
	w.touch(now)
}

func (w *Wizard) editable(step Step) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.step < step {
		return fmt.Errorf("%w: %s needs cursor at %s, currently %s", ErrStepNotReached, step, step, w.step)
	}
	return nil
}

func (w *Wizard) reprice() {
	var surcharge int64
	if h, ok := w.catalog.helicopter(w.aircraft.HelicopterID); ok {
		surcharge = h.Surcharge
	}
	w.price = EstimatePrice(surcharge, w.aircraft.Passengers, w.schedule.AddOns)
}

func (w *Wizard) clearErrors(fields ...string) {
	for _, f := range fields {
		delete(w.errors, f)
	}
}

func (w *Wizard) touch(now time.Time) { w.UpdatedAt = now }

// Customer is who the booking is for.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// BuildBooking assembles a pending booking from resolved reference objects.
func BuildBooking(sub Submission, customer Customer, pickup, dropoff gormModels.SavedLocation, heli gormModels.Helicopter) gormModels.Booking {
	return gormModels.Booking{
		UserID:          customer.ID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		PickupLocation:  pickup.AsLocation(),
		DropoffLocation: dropoff.AsLocation(),
		DepartureDate:   sub.Date,
		DepartureTime:   sub.Time,
		PassengerCount:  sub.Passengers,
		HelicopterID:    heli.ID,
		AddOns:          sub.AddOns,
		SpecialRequests: sub.SpecialRequests,
		Price:           EstimatePrice(heli.Surcharge, sub.Passengers, sub.AddOns),
		Status:          constants.BookingPending,
	}
}
