package engine

import (
	"log/slog"

	"github.com/jwmdev/brtsim/internal/config"
	"github.com/jwmdev/brtsim/internal/model"
	"github.com/jwmdev/brtsim/internal/rng"
)

// Setup builds the Route and Fleet from ingested stop/signal definitions and
// configuration, seeds the initial fleet departures, and returns a
// ready-to-run Simulator (spec.md §4.8).
//
// stopDefs and signalDefs must already be ordered as they appear along the
// route; Setup assigns mileage by walking each sequence with stochastic
// inter-element distances and inserting into a shared Route, resampling on
// mileage collision (spec.md §4.2 "Collision policy").
func Setup(cfg *config.Config, stopDefs []*model.Stop, signalDefs []*model.Signal, source *rng.Source, logger *slog.Logger) (*Simulator, error) {
	route := model.NewRoute()

	placeStops(route, stopDefs, cfg.Stop.DistAvg, cfg.Stop.DistSd, source)
	placeSignals(route, signalDefs, cfg.Signal.DistAvg, cfg.Signal.DistSd, source)

	fleet, events, err := seedFleet(cfg, stopDefs, source)
	if err != nil {
		return nil, err
	}

	morningWindow, err := config.ParsePeakWindow(cfg.General.MorningPeak)
	if err != nil {
		return nil, err
	}
	eveningWindow, err := config.ParsePeakWindow(cfg.General.EveningPeak)
	if err != nil {
		return nil, err
	}

	params := Params{
		VavgMeanKmph:    cfg.Velocity.Avg,
		VavgSDKmph:      cfg.Velocity.Sd,
		VlimitKmph:      cfg.Velocity.Limit,
		VlowKmph:        cfg.Velocity.Low,
		Tmax:            cfg.Time.Tmax,
		SchemeThreshold: cfg.Time.SchemeThreshold,
		MorningWindow:   morningWindow,
		EveningWindow:   eveningWindow,
	}

	sim := New(route, fleet, source, params, logger)
	for _, e := range events {
		// Seeding always schedules forward from t=0, so the event-time-ordering
		// assertion in schedule never rejects a legitimate departure time.
		if err := sim.schedule(0, e); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func placeStops(route *model.Route, stops []*model.Stop, distAvg, distSd float64, source *rng.Source) {
	mileage := 0.0
	for i, s := range stops {
		if i > 0 {
			mileage = nextMileage(route, mileage, distAvg, distSd, source)
		}
		s.Mileage = mileage
		route.InsertStop(s)
	}
}

func placeSignals(route *model.Route, signals []*model.Signal, distAvg, distSd float64, source *rng.Source) {
	mileage := 0.0
	for _, sig := range signals {
		mileage = nextMileage(route, mileage, distAvg, distSd, source)
		sig.Mileage = mileage
		route.InsertSignal(sig)
	}
}

// nextMileage draws a truncated-normal inter-element distance and resamples
// if the resulting mileage collides with an existing route element.
func nextMileage(route *model.Route, from, distAvg, distSd float64, source *rng.Source) float64 {
	for {
		d := source.NormalNonNegative(distAvg, distSd)
		candidate := from + d
		if !route.HasMileage(candidate) {
			return candidate
		}
	}
}

// seedFleet draws headways and builds the shift-bus fleet plus each bus's
// initial ArriveStop event at the route origin (spec.md §4.8).
func seedFleet(cfg *config.Config, stops []*model.Stop, source *rng.Source) (*model.Fleet, []model.Event, error) {
	startTime, err := config.ParseHHMM(cfg.Schedule.StartTime)
	if err != nil {
		return nil, nil, err
	}
	originID := 0
	if len(stops) > 0 {
		originID = stops[0].ID
	}

	const minutesToSeconds = 60.0
	avgSec := cfg.Schedule.Avg * minutesToSeconds
	sdSec := cfg.Schedule.Sd * minutesToSeconds

	buses := make([]*model.Bus, cfg.Schedule.Shift)
	events := make([]model.Event, cfg.Schedule.Shift)
	cum := startTime
	for i := 0; i < cfg.Schedule.Shift; i++ {
		h := source.AbsNormal(avgSec, sdSec)
		buses[i] = model.NewBus(i, h)
		if i > 0 {
			cum += h
		}
		events[i] = model.Event{Time: cum, BusID: i, Type: model.ArriveStop, ElementID: originID, Direction: 1}
	}

	return model.NewFleet(buses), events, nil
}
