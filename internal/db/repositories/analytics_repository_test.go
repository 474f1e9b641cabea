package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAnalytics(t *testing.T) (*AnalyticsSQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewAnalyticsSQLRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestAnalyticsSQLRepository_BookingTotals(t *testing.T) {
	repo, mock := newMockAnalytics(t)
	from := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery(`SELECT (.+) AS revenue, COUNT\(\*\) AS bookings FROM bookings WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "bookings"}).AddRow(int64(14500), 3))

	totals, err := repo.BookingTotals(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(14500), totals.Revenue)
	assert.Equal(t, 3, totals.Bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsSQLRepository_PopularRoutes(t *testing.T) {
	repo, mock := newMockAnalytics(t)
	from := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE status <> 'cancelled' (.+) GROUP BY pickup_name, dropoff_name (.+) LIMIT \$3`).
		WithArgs(from, to, 3).
		WillReturnRows(sqlmock.NewRows([]string{"origin", "destination", "bookings", "revenue"}).
			AddRow("Manhattan Heliport", "Hamptons Executive Airport", 2, int64(14000)).
			AddRow("Downtown Heliport", "Manhattan Heliport", 1, int64(7500)))

	routes, err := repo.PopularRoutes(context.Background(), from, to, 3)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "Manhattan Heliport", routes[0].Origin)
	assert.Equal(t, 2, routes[0].Bookings)
	assert.Equal(t, int64(7500), routes[1].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsSQLRepository_NewUsersAndFleetUsage(t *testing.T) {
	repo, mock := newMockAnalytics(t)
	from := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`FROM helicopters`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active"}).AddRow(4, 1))

	n, err := repo.NewUsers(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	usage, err := repo.FleetUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, usage.Percent())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsSQLRepository_QueryError(t *testing.T) {
	repo, mock := newMockAnalytics(t)
	mock.ExpectQuery(`FROM helicopters`).WillReturnError(assert.AnError)

	_, err := repo.FleetUsage(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFleetUsagePercentEmptyFleet(t *testing.T) {
	assert.Equal(t, 0, FleetUsage{}.Percent())
}
