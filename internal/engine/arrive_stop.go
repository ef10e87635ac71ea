package engine

import (
	"fmt"
	"math"

	"github.com/jwmdev/brtsim/internal/model"
)

// handleArriveStop implements the Stop-Arrival handler (spec.md §4.4).
func (s *Simulator) handleArriveStop(e model.Event) error {
	bus, ok := s.Fleet.FindByID(e.BusID)
	if !ok {
		return fmt.Errorf("%w: bus %d", ErrBusNotFound, e.BusID)
	}
	stop, err := s.Route.FindStop(e.ElementID)
	if err != nil {
		return fmt.Errorf("%w: stop %d", ErrStopNotFound, e.ElementID)
	}

	t := e.Time

	// Step 2: select rates for this visit.
	var arrivalRate, dropRate float64
	if stop.IsOrigin() {
		arrivalRate, dropRate = s.bucketRates(stop, t)
	} else {
		arrivalRate, dropRate = bus.NextArrivalRate, bus.NextDropRate
	}

	// Step 3: update bus position, re-sort fleet.
	bus.Speed = 0
	bus.Mileage = stop.Mileage
	s.Fleet.Sort()

	// Step 4: update stop's waiting-passenger count.
	lastArrive := stop.LastArrive
	var generated int
	if lastArrive >= 0 {
		generated = int(math.Round((t - lastArrive) * arrivalRate))
	} else {
		generated = int(math.Round(bus.Headway * arrivalRate))
	}
	stop.Pax += generated
	s.Generated += generated

	// Step 5: passenger exchange.
	dwellThisStop, dropped := s.exchangePassengers(bus, stop, t, lastArrive, dropRate)
	s.Served += dropped

	// Step 6: headway-deviation contribution.
	if _, hasPrev := s.Fleet.FindPrevBus(bus); hasPrev {
		delta := (t - lastArrive) - bus.Headway
		s.HeadwayDevSum += (delta / bus.Headway) * (delta / bus.Headway)
		s.HeadwayDevContribs++
	}
	stop.LastArrive = t

	// Step 7: schedule departure, unless this is the final route element.
	if !s.Route.IsFinalElement(stop.ID) {
		dwell := bus.Dwell
		if dwellThisStop > dwell {
			dwell = dwellThisStop
		}
		if dwell > s.Params.Tmax {
			dwell = s.Params.Tmax
		}
		if err := s.schedule(t, model.Event{
			Time:      t + dwell,
			BusID:     bus.ID,
			Type:      model.DepartStop,
			ElementID: stop.ID,
			Direction: e.Direction,
		}); err != nil {
			return err
		}
	}

	// Step 8: pay off dwell debt.
	bus.PayDwellDebt(s.Params.Tmax)

	return nil
}

// exchangePassengers implements the passenger-exchange model (spec.md
// §4.4.1) and returns dwellThisStop and the count of passengers dropped off.
func (s *Simulator) exchangePassengers(bus *model.Bus, stop *model.Stop, now, lastArrive, dropRate float64) (float64, int) {
	var timePassed float64
	if lastArrive >= 0 {
		timePassed = now - lastArrive
	} else {
		timePassed = bus.Headway
	}

	dropPax := int(math.Floor(timePassed * dropRate))
	if dropPax > bus.Pax {
		dropPax = bus.Pax
	}
	paxRemain := bus.Pax - dropPax
	available := bus.Capacity - paxRemain
	board := stop.Pax
	if board > available {
		board = available
	}
	if board < 0 {
		board = 0
	}

	dwellThisStop := math.Floor(float64(board) * crowdingFactor(paxRemain, bus.Capacity))

	bus.Pax = paxRemain + board
	stop.Pax -= board

	return dwellThisStop, dropPax
}
