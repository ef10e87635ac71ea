// Package engine implements the discrete-event core: the time-ordered
// event queue, the dispatch loop, and the four event handlers (spec.md §4).
package engine

import (
	"fmt"
	"log/slog"

	"github.com/jwmdev/brtsim/internal/model"
	"github.com/jwmdev/brtsim/internal/rng"
)

// Params holds the engine-level tunables read from configuration (spec.md
// §6): speed bounds, dwell cap, and the bunching-detector threshold.
type Params struct {
	VavgMeanKmph float64 // cruise-speed mean, km/h
	VavgSDKmph   float64 // cruise-speed stddev, km/h
	VlimitKmph   float64 // hard upper speed bound, km/h
	VlowKmph     float64 // hard lower speed bound, km/h
	Tmax         float64 // max dwell paid per stop, seconds
	SchemeThreshold float64 // bunching detector fraction, typically 0.75

	MorningWindow model.Window
	EveningWindow model.Window
}

// Vlimit returns the hard upper speed bound in m/s.
func (p Params) Vlimit() float64 { return p.VlimitKmph / 3.6 }

// Vlow returns the hard lower speed bound in m/s.
func (p Params) Vlow() float64 { return p.VlowKmph / 3.6 }

// crowding policy constants (spec.md §4.4.1 — "policy constants, not derived").
const (
	crowdingThresholdFraction = 0.65
	crowdingLowFactor         = 2.0
	crowdingHighFactor        = 2.7
)

// Simulator owns every bus, stop, signal, and event for one run
// (spec.md §3 "Ownership"). Handlers hold transient references only.
type Simulator struct {
	Route  *model.Route
	Fleet  *model.Fleet
	Queue  *Queue
	RNG    *rng.Source
	Params Params
	Log    *slog.Logger

	// HeadwayDevSum / HeadwayDevContribs accumulate the squared relative
	// headway-deviation term (spec.md §4.4 step 6, §9 open question 3).
	HeadwayDevSum      float64
	HeadwayDevContribs int

	// Generated / Served count passengers added to a stop's waiting queue
	// and passengers dropped off a bus, for the run summary report.
	Generated int
	Served    int
}

// New builds a Simulator over an already-populated route and fleet.
func New(route *model.Route, fleet *model.Fleet, source *rng.Source, params Params, logger *slog.Logger) *Simulator {
	return &Simulator{
		Route:  route,
		Fleet:  fleet,
		Queue:  NewQueue(),
		RNG:    source,
		Params: params,
		Log:    logger,
	}
}

// schedule pushes a successor event, asserting event-time ordering
// (spec.md §4.3: "any successor event a handler emits must have a firing
// time >= the current event's time"). Violations are a programmer error.
func (s *Simulator) schedule(now float64, e model.Event) error {
	if e.Time < now {
		return fmt.Errorf("%w: successor at %.3f before current event at %.3f", ErrInvariantViolation, e.Time, now)
	}
	s.Queue.Push(e)
	return nil
}

// Run pops events in time order and dispatches by type, terminating when
// the queue drains (spec.md §4.3).
func (s *Simulator) Run() error {
	for s.Queue.Len() > 0 {
		e := s.Queue.Pop()
		var err error
		switch e.Type {
		case model.ArriveStop:
			err = s.handleArriveStop(e)
		case model.DepartStop:
			err = s.handleDepartStop(e)
		case model.ArriveSignal:
			err = s.handleArriveSignal(e)
		case model.DepartSignal:
			err = s.handleDepartSignal(e)
		default:
			err = fmt.Errorf("%w: %v", ErrUnknownEventType, e.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// bucketRates samples an arrival/drop rate pair for a stop at time t by
// drawing from its time-of-day (mean, stddev) distribution (spec.md §4.4
// step 2, §4.5 step 1).
func (s *Simulator) bucketRates(stop *model.Stop, t float64) (arrivalRate, dropRate float64) {
	b := model.ResolveBucket(t, s.Params.MorningWindow, s.Params.EveningWindow)
	ar := stop.ArrivalRate[b]
	dr := stop.DropRate[b]
	arrivalRate = s.RNG.NormalNonNegative(ar.Mean, ar.StdDev)
	dropRate = s.RNG.NormalNonNegative(dr.Mean, dr.StdDev)
	return arrivalRate, dropRate
}

// crowdingFactor returns the per-passenger boarding time coefficient,
// larger when the bus is already crowded (spec.md §4.4.1, glossary).
func crowdingFactor(paxOnboard int, capacity int) float64 {
	if float64(paxOnboard) < crowdingThresholdFraction*float64(capacity) {
		return crowdingLowFactor
	}
	return crowdingHighFactor
}
