package services

import (
	"context"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/logging"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
	"helo-luxury-air/portal/internal/wizard"

	"golang.org/x/sync/singleflight"
)

const fleetCacheTTL = time.Minute

var fleetStatuses = []constants.AircraftStatus{
	constants.AircraftAvailable,
	constants.AircraftInUse,
	constants.AircraftMaintenance,
	constants.AircraftOutOfService,
}

// FleetService serves helicopter listings. Concurrent misses for the same
// listing share one query.
type FleetService struct {
	repo    repositories.HelicopterRepository
	cache   common.CacheInterface
	latency *common.Latency
	group   singleflight.Group
	now     func() time.Time
}

func NewFleetService(repo repositories.HelicopterRepository, cache common.CacheInterface, latency *common.Latency, now func() time.Time) *FleetService {
	if now == nil {
		now = time.Now
	}
	return &FleetService{
		repo:    repo,
		cache:   cache,
		latency: latency,
		now:     now,
	}
}

func (s *FleetService) List(ctx context.Context, status *constants.AircraftStatus) ([]gormModels.Helicopter, error) {
	if status != nil && !status.Valid() {
		return nil, newInputError("status", constants.MsgInvalidStatus)
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	key := fleetKey(status)
	var cached []gormModels.Helicopter
	if s.cache.GetInto(key, &cached) {
		return copyFleet(cached), nil
	}

	// the shared load must not die with whichever caller started it
	loadCtx := context.WithoutCancel(ctx)
	val, err, shared := s.group.Do(key, func() (interface{}, error) {
		fleet, err := s.repo.List(loadCtx, status)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, fleet, fleetCacheTTL)
		return fleet, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Debug("Fleet listing shared", "key", key)
	}
	return copyFleet(val.([]gormModels.Helicopter)), nil
}

func (s *FleetService) Get(ctx context.Context, id string) (*gormModels.Helicopter, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus accepts any valid status; aircraft have no transition rules.
func (s *FleetService) UpdateStatus(ctx context.Context, id string, status constants.AircraftStatus) (*gormModels.Helicopter, error) {
	if !status.Valid() {
		return nil, newInputError("status", constants.MsgInvalidStatus)
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	h, err := s.repo.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, err
	}
	s.invalidate()
	logging.Info("Aircraft status changed", "helicopter_id", id, "status", status)
	return h, nil
}

// ScheduleMaintenance grounds the aircraft until the given day.
func (s *FleetService) ScheduleMaintenance(ctx context.Context, id, date string) (*gormModels.Helicopter, error) {
	now := s.now()
	if msg := departureDateProblem(date, now); msg != "" {
		return nil, newInputError("maintenance_date", msg)
	}
	day, _ := time.ParseInLocation(wizard.DateLayout, date, now.Location())

	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	h, err := s.repo.ScheduleMaintenance(ctx, id, day, now)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	logging.Info("Maintenance scheduled", "helicopter_id", id, "date", date)
	return h, nil
}

func (s *FleetService) invalidate() {
	s.cache.Delete(fleetKey(nil))
	for _, st := range fleetStatuses {
		s.cache.Delete(fleetKey(&st))
	}
}

func fleetKey(status *constants.AircraftStatus) string {
	if status == nil {
		return string(constants.CachePrefixFleet) + "all"
	}
	return string(constants.CachePrefixFleet) + string(*status)
}

func copyFleet(in []gormModels.Helicopter) []gormModels.Helicopter {
	out := make([]gormModels.Helicopter, len(in))
	copy(out, in)
	return out
}
