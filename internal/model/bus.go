package model

// Bus is a single vehicle operating the route (spec.md §3 "Bus").
//
// Invariants: 0 <= Pax <= Capacity; Speed >= 0; Mileage is non-decreasing
// between consecutive arrival events for the same bus.
type Bus struct {
	ID       int
	Headway  float64 // scheduled headway in seconds, constant per bus
	Capacity int     // fixed capacity, 60 passengers
	Speed    float64 // m/s, 0 while stopped
	Pax      int     // current passengers onboard
	Mileage  float64 // meters along the route, monotonically non-decreasing

	Dwell  float64 // pending dwell-time debt in seconds, paid off at stops
	LastGo float64 // timestamp of last departure from a stop or signal

	LastStopID int  // id of the stop this bus's bunching flag was last evaluated at
	Bunched    bool // whether the bus is currently treated as bunched

	// NextArrivalRate / NextDropRate are drawn by the departure handler for
	// the next stop and consumed by the following arrival handler
	// (spec.md §4.5 step 1).
	NextArrivalRate float64
	NextDropRate    float64

	// NextSpeed caches the intended cruise speed across a signal stop so it
	// can be restored once the light turns green (spec.md §4.6/§4.7).
	NextSpeed float64
}

// DefaultCapacity is the fixed passenger capacity used by setup (spec.md §3).
const DefaultCapacity = 60

// NewBus constructs a bus with capacity fixed at DefaultCapacity.
func NewBus(id int, headway float64) *Bus {
	return &Bus{
		ID:         id,
		Headway:    headway,
		Capacity:   DefaultCapacity,
		LastStopID: -1,
	}
}

// PayDwellDebt decrements Dwell by min(tmax, Dwell) — the bus pays off
// accumulated dwell debt up to tmax per stop (spec.md §4.4 step 8).
func (b *Bus) PayDwellDebt(tmax float64) {
	pay := b.Dwell
	if pay > tmax {
		pay = tmax
	}
	b.Dwell -= pay
}
