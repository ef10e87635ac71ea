package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwmdev/brtsim/internal/model"
	"github.com/jwmdev/brtsim/internal/plan"
	"github.com/jwmdev/brtsim/internal/rng"
)

func testParams() Params {
	return Params{
		VavgMeanKmph:    25,
		VavgSDKmph:      0,
		VlimitKmph:      40,
		VlowKmph:        10,
		Tmax:            60,
		SchemeThreshold: 0.75,
		MorningWindow:   model.Window{Start: 7 * 3600, End: 9 * 3600},
		EveningWindow:   model.Window{Start: 17 * 3600, End: 19 * 3600},
	}
}

func twoStopRoute() *model.Route {
	r := model.NewRoute()
	r.InsertStop(model.NewStop(0, "Origin", 0))
	r.InsertStop(model.NewStop(1, "Far", 1000))
	return r
}

// TestScenarioASingleBusNoSignals mirrors spec.md Scenario A.
func TestScenarioASingleBusNoSignals(t *testing.T) {
	route := twoStopRoute()
	bus := model.NewBus(0, 300)
	fleet := model.NewFleet([]*model.Bus{bus})
	source := rng.New(1)
	sim := New(route, fleet, source, testParams(), slog.Default())

	require.NoError(t, sim.schedule(0, model.Event{Time: 25200, BusID: 0, Type: model.ArriveStop, ElementID: 0, Direction: 1}))
	require.NoError(t, sim.Run())

	require.Equal(t, 0.0, sim.HeadwayDevSum)
	require.Equal(t, 1000.0, bus.Mileage)
}

// TestScenarioBTwoBusesHeadwayDeviation mirrors spec.md Scenario B: two
// buses visiting the same origin stop 300s apart with a 1/60 pax-per-second
// arrival rate and zero drop rate. Both handlers are invoked directly
// (bypassing the queue) so the intervening DepartStop events for bus0 do
// not perturb the Stop0 passenger count under inspection.
func TestScenarioBTwoBusesHeadwayDeviation(t *testing.T) {
	route := twoStopRoute()
	origin, err := route.FindStop(0)
	require.NoError(t, err)
	// 25200s (07:00) and 25500s fall in testParams' morning window.
	origin.ArrivalRate[model.Morning] = model.RatePair{Mean: 1.0 / 60.0}

	bus0 := model.NewBus(0, 300)
	bus1 := model.NewBus(1, 300)
	fleet := model.NewFleet([]*model.Bus{bus0, bus1})
	source := rng.New(1)
	sim := New(route, fleet, source, testParams(), slog.Default())

	require.NoError(t, sim.handleArriveStop(model.Event{Time: 25200, BusID: 0, Type: model.ArriveStop, ElementID: 0, Direction: 1}))
	require.Equal(t, 0, origin.Pax) // all 5 generated passengers boarded bus 0
	require.Equal(t, 5, bus0.Pax)
	require.Equal(t, 0, sim.HeadwayDevContribs) // bus 0 is the leader, no predecessor at Stop0

	require.NoError(t, sim.handleArriveStop(model.Event{Time: 25500, BusID: 1, Type: model.ArriveStop, ElementID: 0, Direction: 1}))
	require.Equal(t, 0, origin.Pax) // 5 fresh arrivals since bus 0, all boarded bus 1
	require.Equal(t, 5, bus1.Pax)
	require.Equal(t, 0, sim.HeadwayDevContribs) // both buses share Stop0's mileage, neither is "ahead"
	require.Equal(t, 10, sim.Generated)
	require.Equal(t, 0, sim.Served) // Served counts alightings; the drop rate is zero
}

// TestHandleArriveStopTerminal mirrors spec.md Scenario F: arriving at the
// final route element emits no successor event.
func TestHandleArriveStopTerminal(t *testing.T) {
	route := model.NewRoute()
	route.InsertStop(model.NewStop(0, "Only", 0))
	bus := model.NewBus(0, 300)
	fleet := model.NewFleet([]*model.Bus{bus})
	sim := New(route, fleet, rng.New(1), testParams(), slog.Default())

	require.NoError(t, sim.handleArriveStop(model.Event{Time: 100, BusID: 0, Type: model.ArriveStop, ElementID: 0, Direction: 1}))
	require.Equal(t, 0, sim.Queue.Len())

	stop, _ := route.FindStop(0)
	require.Equal(t, 100.0, stop.LastArrive)
}

// TestSignalGreenPassthrough mirrors spec.md Scenario C.
func TestSignalGreenPassthrough(t *testing.T) {
	route := model.NewRoute()
	route.InsertStop(model.NewStop(0, "Origin", 0))
	p, err := plan.Parse("/0000/60/0/0,30/")
	require.NoError(t, err)
	route.InsertSignal(&model.Signal{ID: 0, Name: "Light", Mileage: 500, Plan: p})
	route.InsertStop(model.NewStop(1, "Far", 1000))

	bus := model.NewBus(0, 300)
	bus.Speed = 6.944
	fleet := model.NewFleet([]*model.Bus{bus})
	sim := New(route, fleet, rng.New(1), testParams(), slog.Default())

	require.NoError(t, sim.handleArriveSignal(model.Event{Time: 25215, BusID: 0, Type: model.ArriveSignal, ElementID: 0, Direction: 1}))

	require.Equal(t, 1, sim.Queue.Len())
	next := sim.Queue.Pop()
	require.Equal(t, model.ArriveStop, next.Type)
	require.Equal(t, 6.944, bus.Speed)
}

// TestSignalRedWait mirrors spec.md Scenario D.
func TestSignalRedWait(t *testing.T) {
	route := model.NewRoute()
	route.InsertStop(model.NewStop(0, "Origin", 0))
	p, err := plan.Parse("/0000/60/0/0,30/")
	require.NoError(t, err)
	route.InsertSignal(&model.Signal{ID: 0, Name: "Light", Mileage: 500, Plan: p})

	bus := model.NewBus(0, 300)
	bus.Speed = 6.944
	fleet := model.NewFleet([]*model.Bus{bus})
	sim := New(route, fleet, rng.New(1), testParams(), slog.Default())

	require.NoError(t, sim.handleArriveSignal(model.Event{Time: 25240, BusID: 0, Type: model.ArriveSignal, ElementID: 0, Direction: 1}))

	require.Equal(t, 1, sim.Queue.Len())
	next := sim.Queue.Pop()
	require.Equal(t, model.DepartSignal, next.Type)
	require.Equal(t, 25260.0, next.Time)
	require.Equal(t, 0.0, bus.Speed)
}

// TestDepartStopTooCloseClearsBunchedFlag mirrors spec.md Scenario E's
// numbers under the bunching-detector formula as given in section 4.5: when
// distance/Vavg_sample falls below bus.headway*schemeThreshold the bus is
// "too close" to its leader, so the handler overrides newSpeed to the cruise
// sample and clears (not sets) the bunching flag. Separation here is 827.2m
// against a 6.944 m/s cruise sample (119s) versus a 225s threshold.
func TestDepartStopTooCloseClearsBunchedFlag(t *testing.T) {
	route := twoStopRoute()
	stop0, _ := route.FindStop(0)

	leader := model.NewBus(0, 300)
	leader.Mileage = 480
	leader.Speed = 6.944
	leader.LastGo = 25400

	follower := model.NewBus(1, 300)
	follower.Mileage = 0
	follower.Bunched = true
	follower.NextArrivalRate = 0
	follower.NextDropRate = 0

	fleet := model.NewFleet([]*model.Bus{leader, follower})
	fleet.Sort()

	sim := New(route, fleet, rng.New(1), testParams(), slog.Default())

	require.NoError(t, sim.handleDepartStop(model.Event{Time: 25450, BusID: 1, Type: model.DepartStop, ElementID: stop0.ID, Direction: 1}))

	require.False(t, follower.Bunched)
	require.InDelta(t, 6.944, follower.Speed, 1e-3)
	require.GreaterOrEqual(t, follower.Speed, sim.Params.Vlow())
	require.LessOrEqual(t, follower.Speed, sim.Params.Vlimit())
}

// TestDepartStopAdequateSeparationSetsBunchedFlag covers the complementary
// branch: separation comfortably above the threshold keeps the
// headway-paced newSpeed and sets the bunching flag.
func TestDepartStopAdequateSeparationSetsBunchedFlag(t *testing.T) {
	route := twoStopRoute()
	stop0, _ := route.FindStop(0)

	leader := model.NewBus(0, 300)
	leader.Mileage = 2000
	leader.Speed = 0 // stationary leader: distance = leader.Mileage - stop.Mileage

	follower := model.NewBus(1, 300)
	follower.Mileage = 0
	follower.NextArrivalRate = 0
	follower.NextDropRate = 0

	fleet := model.NewFleet([]*model.Bus{leader, follower})
	fleet.Sort()

	sim := New(route, fleet, rng.New(1), testParams(), slog.Default())

	require.NoError(t, sim.handleDepartStop(model.Event{Time: 25450, BusID: 1, Type: model.DepartStop, ElementID: stop0.ID, Direction: 1}))

	require.True(t, follower.Bunched)
	require.InDelta(t, 2000.0/300.0, follower.Speed, 1e-3)
	require.GreaterOrEqual(t, follower.Speed, sim.Params.Vlow())
	require.LessOrEqual(t, follower.Speed, sim.Params.Vlimit())
}
