package services

import (
	"context"
	"errors"
	"testing"

	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/models/dtos"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
	"helo-luxury-air/portal/internal/wizard"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkToReview(t *testing.T, env *testEnv, draftID string) wizard.View {
	t.Helper()
	_, err := env.wizardSvc.SetLocations(memberUser, draftID, wizard.LocationsStep{PickupID: "loc-1", DropoffID: "loc-3"})
	require.NoError(t, err)
	_, err = env.wizardSvc.Next(memberUser, draftID)
	require.NoError(t, err)
	_, err = env.wizardSvc.SetAircraft(memberUser, draftID, wizard.AircraftStep{HelicopterID: "h1", Passengers: 3})
	require.NoError(t, err)
	_, err = env.wizardSvc.Next(memberUser, draftID)
	require.NoError(t, err)
	_, err = env.wizardSvc.SetSchedule(memberUser, draftID, wizard.ScheduleStep{
		Date:   "2025-06-11",
		Time:   "14:00",
		AddOns: gormModels.AddOns{GroundTransportation: true},
	})
	require.NoError(t, err)
	view, err := env.wizardSvc.Next(memberUser, draftID)
	require.NoError(t, err)
	return view
}

func TestWizardService_StartLoadsOptions(t *testing.T) {
	env := setupTestEnv(t)

	view, err := env.wizardSvc.Start(context.Background(), memberUser)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepLocations, view.Step)
	assert.Len(t, view.Options.Locations, 3)
	assert.Len(t, view.Options.Helicopters, 2, "only available aircraft are bookable")
}

func TestWizardService_SubmitRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	start, err := env.wizardSvc.Start(ctx, memberUser)
	require.NoError(t, err)
	review := walkToReview(t, env, start.ID)
	assert.Equal(t, wizard.StepReview, review.Step)
	assert.Equal(t, int64(6750), review.EstimatedPrice)

	booking, err := env.wizardSvc.Submit(ctx, memberUser, start.ID)
	require.NoError(t, err)

	got, err := env.bookings.Get(ctx, memberUser, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "loc-1", got.PickupLocation.ID)
	assert.Equal(t, "Hamptons House", got.DropoffLocation.Name)
	assert.Equal(t, "2025-06-11", got.DepartureDate)
	assert.Equal(t, "14:00", got.DepartureTime)
	assert.Equal(t, 3, got.PassengerCount)
	assert.Equal(t, int64(6750), got.Price)
	assert.Equal(t, "Standard Member", got.CustomerName)

	_, err = env.wizardSvc.Get(memberUser, start.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound, "submitted drafts are discarded")
}

func TestWizardService_SameLocationBlocksNext(t *testing.T) {
	env := setupTestEnv(t)

	start, err := env.wizardSvc.Start(context.Background(), memberUser)
	require.NoError(t, err)
	_, err = env.wizardSvc.SetLocations(memberUser, start.ID, wizard.LocationsStep{PickupID: "loc-2", DropoffID: "loc-2"})
	require.NoError(t, err)

	view, err := env.wizardSvc.Next(memberUser, start.ID)
	assert.ErrorIs(t, err, wizard.ErrValidation)
	assert.Equal(t, wizard.StepLocations, view.Step)
	assert.Equal(t, constants.MsgSameLocation, view.Errors[wizard.FieldDropoff])
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.WizardStepTransitions.WithLabelValues("next", "blocked")))
}

func TestWizardService_DraftsArePrivate(t *testing.T) {
	env := setupTestEnv(t)

	start, err := env.wizardSvc.Start(context.Background(), memberUser)
	require.NoError(t, err)

	_, err = env.wizardSvc.Get(otherUser, start.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = env.wizardSvc.Submit(context.Background(), otherUser, start.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestWizardService_SubmitAbortsWhenLocationVanished(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	start, err := env.wizardSvc.Start(ctx, memberUser)
	require.NoError(t, err)
	walkToReview(t, env, start.ID)

	require.NoError(t, env.userSvc.RemoveSavedLocation(ctx, "member-1", "loc-3"))

	_, err = env.wizardSvc.Submit(ctx, memberUser, start.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, constants.MsgUnknownLocation, inputErr.Fields[wizard.FieldDropoff])

	own, err := env.bookings.ListForUser(ctx, "member-1")
	require.NoError(t, err)
	assert.Len(t, own, 1, "no partial booking is written")

	_, err = env.wizardSvc.Get(memberUser, start.ID)
	assert.NoError(t, err, "draft survives a failed submit")
}

func TestWizardService_SubmitRejectsAircraftTakenOutOfService(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	start, err := env.wizardSvc.Start(ctx, memberUser)
	require.NoError(t, err)
	walkToReview(t, env, start.ID)

	_, err = env.fleet.UpdateStatus(ctx, "h1", constants.AircraftMaintenance)
	require.NoError(t, err)

	_, err = env.wizardSvc.Submit(ctx, memberUser, start.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, constants.MsgUnknownHelicopter, inputErr.Fields[wizard.FieldHelicopter])

	own, err := env.bookings.ListForUser(ctx, "member-1")
	require.NoError(t, err)
	assert.Len(t, own, 1, "no booking against a grounded aircraft")
}

func TestWizardService_SubmitBeforeReview(t *testing.T) {
	env := setupTestEnv(t)

	start, err := env.wizardSvc.Start(context.Background(), memberUser)
	require.NoError(t, err)

	_, err = env.wizardSvc.Submit(context.Background(), memberUser, start.ID)
	assert.ErrorIs(t, err, wizard.ErrIncomplete)
}

func TestWizardService_CreateDirect(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	b, err := env.wizardSvc.CreateDirect(ctx, memberUser, dtos.BookingCreateRequest{
		PickupLocationID:  "loc-2",
		DropoffLocationID: "loc-3",
		HelicopterID:      "h2",
		Passengers:        2,
		DepartureDate:     "2025-06-15",
		DepartureTime:     "07:45",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3500+3500+2*250), b.Price)
	assert.Equal(t, constants.BookingPending, b.Status)

	_, err = env.wizardSvc.CreateDirect(ctx, memberUser, dtos.BookingCreateRequest{
		PickupLocationID:  "loc-2",
		DropoffLocationID: "loc-2",
	})
	assert.ErrorIs(t, err, wizard.ErrValidation)
}
