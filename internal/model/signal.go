package model

import "github.com/jwmdev/brtsim/internal/plan"

// Signal is a signalized intersection along the route (spec.md §3 "Signal").
// Immutable after setup.
type Signal struct {
	ID      int
	Name    string
	Mileage float64
	Plan    *plan.Plan
}
