package model

import "sort"

// Fleet is the ordered sequence of buses, kept sorted by descending mileage
// after each arrival event to enable O(n) leading-bus lookup (spec.md §3
// "Fleet"). Any iterator obtained before a Sort call is invalid afterward
// (spec.md §5).
type Fleet struct {
	Buses []*Bus
}

// NewFleet wraps a slice of buses.
func NewFleet(buses []*Bus) *Fleet { return &Fleet{Buses: buses} }

// Sort re-sorts the fleet by descending mileage (furthest-along bus first).
func (f *Fleet) Sort() {
	sort.SliceStable(f.Buses, func(i, j int) bool { return f.Buses[i].Mileage > f.Buses[j].Mileage })
}

// FindByID returns the bus with the given id, or (nil, false).
func (f *Fleet) FindByID(id int) (*Bus, bool) {
	for _, b := range f.Buses {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// FindPrevBus returns the unique bus with the smallest mileage strictly
// greater than target's mileage — the bus immediately ahead on the route
// (spec.md §9 "Stable leading-bus lookup"). Returns (nil, false) if target
// is the leader.
func (f *Fleet) FindPrevBus(target *Bus) (*Bus, bool) {
	var best *Bus
	for _, b := range f.Buses {
		if b.ID == target.ID {
			continue
		}
		if b.Mileage > target.Mileage {
			if best == nil || b.Mileage < best.Mileage {
				best = b
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
