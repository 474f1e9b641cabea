package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	queryBookingTotals = `
		SELECT
			CAST(COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN price ELSE 0 END), 0) AS BIGINT) AS revenue,
			COUNT(*) AS bookings
		FROM bookings
		WHERE created_at >= ? AND created_at < ?`

	queryNewUsers = `
		SELECT COUNT(*)
		FROM users
		WHERE created_at >= ? AND created_at < ?`

	queryPopularRoutes = `
		SELECT
			pickup_name AS origin,
			dropoff_name AS destination,
			COUNT(*) AS bookings,
			CAST(COALESCE(SUM(price), 0) AS BIGINT) AS revenue
		FROM bookings
		WHERE status <> 'cancelled' AND created_at >= ? AND created_at < ?
		GROUP BY pickup_name, dropoff_name
		ORDER BY bookings DESC, origin ASC, destination ASC
		LIMIT ?`

	queryFleetUsage = `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'in_use' THEN 1 ELSE 0 END), 0) AS active
		FROM helicopters`
)

type BookingTotals struct {
	Revenue  int64 `db:"revenue"`
	Bookings int   `db:"bookings"`
}

type RouteStat struct {
	Origin      string `db:"origin"`
	Destination string `db:"destination"`
	Bookings    int    `db:"bookings"`
	Revenue     int64  `db:"revenue"`
}

type FleetUsage struct {
	Total  int `db:"total"`
	Active int `db:"active"`
}

// Percent of the fleet currently flying, rounded down.
func (f FleetUsage) Percent() int {
	if f.Total == 0 {
		return 0
	}
	return f.Active * 100 / f.Total
}

type AnalyticsRepository interface {
	BookingTotals(ctx context.Context, from, to time.Time) (BookingTotals, error)
	NewUsers(ctx context.Context, from, to time.Time) (int, error)
	PopularRoutes(ctx context.Context, from, to time.Time, limit int) ([]RouteStat, error)
	FleetUsage(ctx context.Context) (FleetUsage, error)
}

// AnalyticsSQLRepository runs the dashboard aggregates as raw SQL. Queries are
// written with ? and rebound for the connected driver.
type AnalyticsSQLRepository struct {
	db *sqlx.DB
}

func NewAnalyticsSQLRepository(db *sqlx.DB) *AnalyticsSQLRepository {
	return &AnalyticsSQLRepository{db: db}
}

func (r *AnalyticsSQLRepository) BookingTotals(ctx context.Context, from, to time.Time) (BookingTotals, error) {
	var t BookingTotals
	if err := r.db.GetContext(ctx, &t, r.db.Rebind(queryBookingTotals), from.UTC(), to.UTC()); err != nil {
		return BookingTotals{}, fmt.Errorf("failed to sum bookings: %w", err)
	}
	return t, nil
}

func (r *AnalyticsSQLRepository) NewUsers(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(queryNewUsers), from.UTC(), to.UTC()); err != nil {
		return 0, fmt.Errorf("failed to count new users: %w", err)
	}
	return n, nil
}

func (r *AnalyticsSQLRepository) PopularRoutes(ctx context.Context, from, to time.Time, limit int) ([]RouteStat, error) {
	routes := []RouteStat{}
	if err := r.db.SelectContext(ctx, &routes, r.db.Rebind(queryPopularRoutes), from.UTC(), to.UTC(), limit); err != nil {
		return nil, fmt.Errorf("failed to rank routes: %w", err)
	}
	return routes, nil
}

func (r *AnalyticsSQLRepository) FleetUsage(ctx context.Context) (FleetUsage, error) {
	var u FleetUsage
	if err := r.db.GetContext(ctx, &u, queryFleetUsage); err != nil {
		return FleetUsage{}, fmt.Errorf("failed to read fleet usage: %w", err)
	}
	return u, nil
}
