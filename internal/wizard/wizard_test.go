package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
)

var testNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func testCatalog() Catalog {
	return Catalog{
		Locations: []gormModels.SavedLocation{
			{ID: "loc-1", Name: "Home", Address: "123 Main St"},
			{ID: "loc-2", Name: "Office", Address: "456 Market St"},
		},
		Helicopters: []gormModels.Helicopter{
			{ID: "h1", Name: "Bell 407", Capacity: 6, Surcharge: 2000},
			{ID: "h2", Name: "Airbus H145", Capacity: 8, Surcharge: 3500},
		},
	}
}

func advanceTo(t *testing.T, w *Wizard, step Step) {
	t.Helper()
	if step > StepLocations {
		require.NoError(t, w.SetLocations(LocationsStep{PickupID: "loc-1", DropoffID: "loc-2"}, testNow))
		require.NoError(t, w.Next(testNow))
	}
	if step > StepAircraft {
		require.NoError(t, w.SetAircraft(AircraftStep{HelicopterID: "h1", Passengers: 3}, testNow))
		require.NoError(t, w.Next(testNow))
	}
	if step > StepSchedule {
		require.NoError(t, w.SetSchedule(ScheduleStep{Date: "2025-06-11", Time: "14:00"}, testNow))
		require.NoError(t, w.Next(testNow))
	}
	require.Equal(t, step, w.Step())
}

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		name       string
		surcharge  int64
		passengers int
		addOns     gormModels.AddOns
		want       int64
	}{
		{"base only", 0, 1, gormModels.AddOns{}, 3750},
		{"bell with ground transport", 2000, 3, gormModels.AddOns{GroundTransportation: true}, 6750},
		{"all add-ons", 3500, 8, gormModels.AddOns{GroundTransportation: true, Catering: true, ConciergeService: true}, 3500 + 3500 + 2000 + 500 + 750 + 1000},
		{"passengers clamped low", 0, 0, gormModels.AddOns{}, 3750},
		{"passengers clamped high", 0, 50, gormModels.AddOns{}, 3500 + 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatePrice(tt.surcharge, tt.passengers, tt.addOns))
		})
	}
}

func TestEstimatePriceMonotonic(t *testing.T) {
	prev := EstimatePrice(1500, MinPassengers, gormModels.AddOns{})
	for n := MinPassengers + 1; n <= MaxPassengers; n++ {
		p := EstimatePrice(1500, n, gormModels.AddOns{})
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}

	none := EstimatePrice(1500, 2, gormModels.AddOns{})
	one := EstimatePrice(1500, 2, gormModels.AddOns{Catering: true})
	two := EstimatePrice(1500, 2, gormModels.AddOns{Catering: true, ConciergeService: true})
	assert.Less(t, none, one)
	assert.Less(t, one, two)
}

func TestNewDraftDefaults(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)

	assert.Equal(t, StepLocations, w.Step())
	assert.Equal(t, 1, w.Aircraft().Passengers)
	assert.Equal(t, int64(3750), w.EstimatedPrice())
	assert.Empty(t, w.Errors())
}

func TestNextBlocksOnSameLocation(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	require.NoError(t, w.SetLocations(LocationsStep{PickupID: "loc-1", DropoffID: "loc-1"}, testNow))

	err := w.Next(testNow)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, StepLocations, verr.Step)
	assert.Equal(t, StepLocations, w.Step())
	assert.Equal(t, constants.MsgSameLocation, w.Errors()[FieldDropoff])
	assert.NotContains(t, w.Errors(), FieldPickup)
}

func TestNextBlocksOnMissingAndUnknownFields(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	require.NoError(t, w.SetLocations(LocationsStep{DropoffID: "loc-9"}, testNow))

	require.Error(t, w.Next(testNow))
	errs := w.Errors()
	assert.Equal(t, constants.MsgFieldRequired, errs[FieldPickup])
	assert.Equal(t, constants.MsgUnknownLocation, errs[FieldDropoff])
}

func TestFullHappyPath(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepAircraft)

	require.NoError(t, w.SetAircraft(AircraftStep{HelicopterID: "h1", Passengers: 3}, testNow))
	require.NoError(t, w.Next(testNow))
	require.NoError(t, w.SetSchedule(ScheduleStep{
		Date:   "2025-06-11",
		Time:   "14:00",
		AddOns: gormModels.AddOns{GroundTransportation: true},
	}, testNow))
	require.NoError(t, w.Next(testNow))

	assert.Equal(t, StepReview, w.Step())
	assert.Equal(t, int64(6750), w.EstimatedPrice())

	sub, err := w.Submission(testNow)
	require.NoError(t, err)
	assert.Equal(t, "loc-1", sub.PickupID)
	assert.Equal(t, "h1", sub.HelicopterID)
	assert.Equal(t, 3, sub.Passengers)
}

func TestNextAndBackClamp(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	w.Back(testNow)
	assert.Equal(t, StepLocations, w.Step())

	advanceTo(t, w, StepReview)
	require.NoError(t, w.Next(testNow))
	assert.Equal(t, StepReview, w.Step())
}

func TestBackSkipsValidationAndKeepsData(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepSchedule)

	require.NoError(t, w.SetSchedule(ScheduleStep{Date: "2020-01-01"}, testNow))
	w.Back(testNow)

	assert.Equal(t, StepAircraft, w.Step())
	assert.Equal(t, "h1", w.Aircraft().HelicopterID)
	assert.Equal(t, "2020-01-01", w.Schedule().Date)
	assert.Empty(t, w.Errors())
}

func TestLaterStepNotEditableEarly(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)

	err := w.SetAircraft(AircraftStep{HelicopterID: "h1", Passengers: 2}, testNow)
	assert.ErrorIs(t, err, ErrStepNotReached)

	err = w.SetSchedule(ScheduleStep{Date: "2025-06-11", Time: "10:00"}, testNow)
	assert.ErrorIs(t, err, ErrStepNotReached)
	assert.Empty(t, w.Aircraft().HelicopterID)
}

func TestPassengersClamped(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepAircraft)

	require.NoError(t, w.SetAircraft(AircraftStep{HelicopterID: "h2", Passengers: 42}, testNow))
	assert.Equal(t, MaxPassengers, w.Aircraft().Passengers)

	require.NoError(t, w.SetAircraft(AircraftStep{HelicopterID: "h2", Passengers: -3}, testNow))
	assert.Equal(t, MinPassengers, w.Aircraft().Passengers)
}

func TestScheduleValidation(t *testing.T) {
	tests := []struct {
		name  string
		step  ScheduleStep
		field string
		msg   string
	}{
		{"missing date", ScheduleStep{Time: "10:00"}, FieldDate, constants.MsgFieldRequired},
		{"malformed date", ScheduleStep{Date: "11/06/2025", Time: "10:00"}, FieldDate, constants.MsgInvalidDate},
		{"past date", ScheduleStep{Date: "2025-06-09", Time: "10:00"}, FieldDate, constants.MsgDateInPast},
		{"missing time", ScheduleStep{Date: "2025-06-11"}, FieldTime, constants.MsgFieldRequired},
		{"malformed time", ScheduleStep{Date: "2025-06-11", Time: "25:99"}, FieldTime, constants.MsgInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateSchedule(tt.step, testNow)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}

	assert.Empty(t, validateSchedule(ScheduleStep{Date: "2025-06-10", Time: "08:00"}, testNow), "today is allowed")
}

func TestSubmissionRequiresReview(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepSchedule)

	_, err := w.Submission(testNow)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSubmissionRevalidates(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepReview)

	// The departure date is in the past a week later.
	_, err := w.Submission(testNow.AddDate(0, 0, 7))
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, constants.MsgDateInPast, w.Errors()[FieldDate])
}

func TestMarkSubmittedFreezesDraft(t *testing.T) {
	w := New("draft-1", "member-1", testCatalog(), testNow)
	advanceTo(t, w, StepReview)
	w.MarkSubmitted(testNow)

	_, err := w.Submission(testNow)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, w.SetLocations(LocationsStep{}, testNow), ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Next(testNow), ErrAlreadySubmitted)
}

func TestBuildBooking(t *testing.T) {
	cat := testCatalog()
	sub := Submission{
		PickupID:     "loc-1",
		DropoffID:    "loc-2",
		HelicopterID: "h1",
		Passengers:   3,
		Date:         "2025-06-11",
		Time:         "14:00",
		AddOns:       gormModels.AddOns{GroundTransportation: true},
	}

	b := BuildBooking(sub, Customer{ID: "member-1", Name: "Jane Smith", Email: "member@flyhelo.one"},
		cat.Locations[0], cat.Locations[1], cat.Helicopters[0])

	assert.Equal(t, constants.BookingPending, b.Status)
	assert.Equal(t, int64(6750), b.Price)
	assert.Equal(t, "Home", b.PickupLocation.Name)
	assert.Equal(t, constants.LocationCustom, b.DropoffLocation.Type)
	assert.Equal(t, "member-1", b.UserID)
	assert.Equal(t, 3, b.PassengerCount)
}
