package engine

import (
	"fmt"
	"math"

	"github.com/jwmdev/brtsim/internal/model"
)

// handleDepartStop implements the Stop-Departure handler: the bunching
// control heart of the simulator (spec.md §4.5).
func (s *Simulator) handleDepartStop(e model.Event) error {
	bus, ok := s.Fleet.FindByID(e.BusID)
	if !ok {
		return fmt.Errorf("%w: bus %d", ErrBusNotFound, e.BusID)
	}
	stop, err := s.Route.FindStop(e.ElementID)
	if err != nil {
		return fmt.Errorf("%w: stop %d", ErrStopNotFound, e.ElementID)
	}

	t := e.Time

	// Step 4 (located early; step 1 needs its distribution): next stop,
	// skipping signals.
	nextStop, hasNext := s.Route.NextStop(stop.ID)

	// Step 1: draw this bus's rates for the next stop, cached for the
	// following arrival handler.
	if hasNext {
		arrivalRate, dropRate := s.bucketRates(nextStop, t)
		bus.NextArrivalRate = arrivalRate
		bus.NextDropRate = dropRate
	}

	// Step 2: per-trip cruise speed sample.
	vavgSample := s.RNG.NormalNonNegative(s.Params.VavgMeanKmph, s.Params.VavgSDKmph) / 3.6

	// Step 3.
	bus.LastGo = t

	if !hasNext {
		// Terminal: end without emitting events.
		return nil
	}

	// Step 5: estimate boarding at the next stop over the headway.
	nextBoard := float64(nextStop.Pax) + math.Ceil(bus.Headway*bus.NextArrivalRate)
	capLimit := float64(bus.Capacity) - float64(bus.Pax)*bus.NextDropRate
	if capLimit < nextBoard {
		nextBoard = capLimit
	}
	if nextBoard < 0 {
		nextBoard = 0
	}
	paxTime := math.Floor(nextBoard * crowdingFactor(bus.Pax, bus.Capacity))
	totalDwell := paxTime + bus.Dwell

	// Step 6: identify preceding bus.
	prevBus, hasPrev := s.Fleet.FindPrevBus(bus)
	if !hasPrev {
		bus.Speed = vavgSample
		bus.Dwell = totalDwell
	} else {
		// Step 7: separation distance and proposed speed.
		var distance float64
		if prevBus.Speed > 0 {
			distance = prevBus.Mileage + prevBus.Speed*(t-prevBus.LastGo) - stop.Mileage
		} else {
			distance = prevBus.Mileage - stop.Mileage
		}
		newSpeed := distance / (bus.Headway + totalDwell)

		if distance/vavgSample < bus.Headway*s.Params.SchemeThreshold {
			newSpeed = vavgSample
			if bus.Bunched && s.Log != nil {
				s.Log.Info("bunching recovered", "bus", bus.ID, "stop", stop.ID, "since_stop", bus.LastStopID)
			}
			bus.Bunched = false
		} else {
			bus.Bunched = true
		}
		bus.LastStopID = stop.ID

		if newSpeed < s.Params.Vlow() {
			totalDwell += (distance / newSpeed) - (distance / vavgSample)
			newSpeed = vavgSample
		} else if newSpeed > s.Params.Vlimit() {
			prevBus.Dwell += (distance / s.Params.Vlimit()) - (distance / newSpeed)
			newSpeed = s.Params.Vlimit()
		}

		bus.Speed = newSpeed
		bus.Dwell = totalDwell
	}

	// Step 8: emit the event for the next route element.
	nextElement, hasNextElement := s.Route.NextElement(model.Element{Kind: model.KindStop, StopID: stop.ID})
	if !hasNextElement {
		return fmt.Errorf("%w: after stop %d", ErrNextElementMissing, stop.ID)
	}

	travelTime := t + (nextElement.Mileage-stop.Mileage)/bus.Speed
	successor := model.Event{Time: travelTime, BusID: bus.ID, Direction: e.Direction}
	switch nextElement.Kind {
	case model.KindStop:
		successor.Type = model.ArriveStop
		successor.ElementID = nextElement.StopID
	case model.KindSignal:
		successor.Type = model.ArriveSignal
		successor.ElementID = nextElement.SignalID
	}
	return s.schedule(t, successor)
}
