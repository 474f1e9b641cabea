package services

import (
	"context"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	popularRouteLimit = 3
	// previous-window routes are looked up by name, so fetch generously
	previousRouteLimit = 100
)

type PopularRoute struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Bookings    int    `json:"bookings"`
	Revenue     int64  `json:"revenue"`
	Growth      int    `json:"growth"`
}

// AnalyticsReport compares the current window with the one just before it.
// Growth values are whole percentages.
type AnalyticsReport struct {
	Timeframe      constants.Timeframe `json:"timeframe"`
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	Revenue        int64               `json:"revenue"`
	RevenueGrowth  int                 `json:"revenueGrowth"`
	TotalBookings  int                 `json:"totalBookings"`
	BookingsGrowth int                 `json:"bookingsGrowth"`
	NewUsers       int                 `json:"newUsers"`
	UserGrowth     int                 `json:"userGrowth"`
	FleetUsage     int                 `json:"fleetUsage"`
	PopularRoutes  []PopularRoute      `json:"popularRoutes"`
}

type AnalyticsService struct {
	repo    repositories.AnalyticsRepository
	latency *common.Latency
	now     func() time.Time
}

func NewAnalyticsService(repo repositories.AnalyticsRepository, latency *common.Latency, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{repo: repo, latency: latency, now: now}
}

// Get runs the current and previous window aggregates concurrently.
func (s *AnalyticsService) Get(ctx context.Context, tf constants.Timeframe) (*AnalyticsReport, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	to := s.now().UTC()
	from := windowStart(tf, to)
	prevFrom := windowStart(tf, from)

	var (
		cur, prev           repositories.BookingTotals
		curUsers, prevUsers int
		routes, prevRoutes  []repositories.RouteStat
		usage               repositories.FleetUsage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cur, err = s.repo.BookingTotals(gctx, from, to); return })
	g.Go(func() (err error) { prev, err = s.repo.BookingTotals(gctx, prevFrom, from); return })
	g.Go(func() (err error) { curUsers, err = s.repo.NewUsers(gctx, from, to); return })
	g.Go(func() (err error) { prevUsers, err = s.repo.NewUsers(gctx, prevFrom, from); return })
	g.Go(func() (err error) { routes, err = s.repo.PopularRoutes(gctx, from, to, popularRouteLimit); return })
	g.Go(func() (err error) { prevRoutes, err = s.repo.PopularRoutes(gctx, prevFrom, from, previousRouteLimit); return })
	g.Go(func() (err error) { usage, err = s.repo.FleetUsage(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prevByRoute := make(map[[2]string]int, len(prevRoutes))
	for _, r := range prevRoutes {
		prevByRoute[[2]string{r.Origin, r.Destination}] = r.Bookings
	}
	popular := make([]PopularRoute, 0, len(routes))
	for _, r := range routes {
		popular = append(popular, PopularRoute{
			Origin:      r.Origin,
			Destination: r.Destination,
			Bookings:    r.Bookings,
			Revenue:     r.Revenue,
			Growth:      growth(int64(r.Bookings), int64(prevByRoute[[2]string{r.Origin, r.Destination}])),
		})
	}

	return &AnalyticsReport{
		Timeframe:      tf,
		From:           from,
		To:             to,
		Revenue:        cur.Revenue,
		RevenueGrowth:  growth(cur.Revenue, prev.Revenue),
		TotalBookings:  cur.Bookings,
		BookingsGrowth: growth(int64(cur.Bookings), int64(prev.Bookings)),
		NewUsers:       curUsers,
		UserGrowth:     growth(int64(curUsers), int64(prevUsers)),
		FleetUsage:     usage.Percent(),
		PopularRoutes:  popular,
	}, nil
}

func windowStart(tf constants.Timeframe, end time.Time) time.Time {
	switch tf {
	case constants.TimeframeMonth:
		return end.AddDate(0, -1, 0)
	case constants.TimeframeYear:
		return end.AddDate(-1, 0, 0)
	default:
		return end.AddDate(0, 0, -7)
	}
}

// growth is the whole-percent change from prev to cur. From zero, any
// activity counts as 100%.
func growth(cur, prev int64) int {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	return int((cur - prev) * 100 / prev)
}
