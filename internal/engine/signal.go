package engine

import (
	"fmt"

	"github.com/jwmdev/brtsim/internal/model"
)

// handleArriveSignal implements the Signal-Arrival handler (spec.md §4.6).
func (s *Simulator) handleArriveSignal(e model.Event) error {
	bus, ok := s.Fleet.FindByID(e.BusID)
	if !ok {
		return fmt.Errorf("%w: bus %d", ErrBusNotFound, e.BusID)
	}
	signal, err := s.Route.FindSignal(e.ElementID)
	if err != nil {
		return fmt.Errorf("%w: signal %d", ErrSignalNotFound, e.ElementID)
	}

	t := e.Time

	bus.NextSpeed = bus.Speed
	bus.Speed = 0
	bus.Mileage = signal.Mileage

	wait, err := signal.Plan.Status(t)
	if err != nil {
		return fmt.Errorf("signal %d: %w", signal.ID, err)
	}

	if wait == 0 {
		bus.Speed = bus.NextSpeed
		return s.emitArrivalAfterSignal(e, signal, t)
	}

	return s.schedule(t, model.Event{
		Time:      t + wait,
		BusID:     bus.ID,
		Type:      model.DepartSignal,
		ElementID: signal.ID,
		Direction: e.Direction,
	})
}

// handleDepartSignal implements the Signal-Departure handler (spec.md §4.7).
func (s *Simulator) handleDepartSignal(e model.Event) error {
	bus, ok := s.Fleet.FindByID(e.BusID)
	if !ok {
		return fmt.Errorf("%w: bus %d", ErrBusNotFound, e.BusID)
	}
	signal, err := s.Route.FindSignal(e.ElementID)
	if err != nil {
		return fmt.Errorf("%w: signal %d", ErrSignalNotFound, e.ElementID)
	}

	t := e.Time
	bus.Speed = bus.NextSpeed
	bus.LastGo = t

	return s.emitArrivalAfterSignal(e, signal, t)
}

// emitArrivalAfterSignal emits the arrival event for the route element
// immediately following the given signal, at the bus's current speed. If
// there is no next element, it terminates silently (spec.md §4.7).
func (s *Simulator) emitArrivalAfterSignal(e model.Event, signal *model.Signal, t float64) error {
	bus, ok := s.Fleet.FindByID(e.BusID)
	if !ok {
		return fmt.Errorf("%w: bus %d", ErrBusNotFound, e.BusID)
	}

	nextElement, hasNext := s.Route.NextElement(model.Element{Kind: model.KindSignal, SignalID: signal.ID})
	if !hasNext {
		return nil
	}

	travelTime := t + (nextElement.Mileage-signal.Mileage)/bus.Speed
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
