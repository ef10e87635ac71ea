package model

// Stop is a passive boarding point along the route (spec.md §3 "Stop").
// Stops are identified by a dense integer id (0..N-1); stop 0 is the origin
// terminal.
type Stop struct {
	ID      int
	Name    string
	Mileage float64

	Pax        int     // current waiting-passenger count, >= 0
	LastArrive float64 // timestamp of most recent bus arrival, -1 if never

	ArrivalRate [3]RatePair // indexed by Bucket: Morning, Evening, OffPeak
	DropRate    [3]RatePair
}

// NewStop constructs a stop with no arrival history.
func NewStop(id int, name string, mileage float64) *Stop {
	return &Stop{ID: id, Name: name, Mileage: mileage, LastArrive: -1}
}

// IsOrigin reports whether this is the route's origin terminal (spec.md
// §4.4 step 2: "if stopId == 0").
func (s *Stop) IsOrigin() bool { return s.ID == 0 }
