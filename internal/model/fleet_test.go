package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFleetSortDescendingMileage(t *testing.T) {
	b1 := NewBus(1, 300)
	b1.Mileage = 100
	b2 := NewBus(2, 300)
	b2.Mileage = 400
	f := NewFleet([]*Bus{b1, b2})
	f.Sort()

	require.Equal(t, 2, f.Buses[0].ID)
	require.Equal(t, 1, f.Buses[1].ID)
}

func TestFleetFindPrevBus(t *testing.T) {
	leader := NewBus(0, 300)
	leader.Mileage = 500
	trailer := NewBus(1, 300)
	trailer.Mileage = 200
	f := NewFleet([]*Bus{leader, trailer})

	prev, ok := f.FindPrevBus(trailer)
	require.True(t, ok)
	require.Equal(t, 0, prev.ID)

	_, ok = f.FindPrevBus(leader)
	require.False(t, ok)
}

func TestFleetFindByID(t *testing.T) {
	f := NewFleet([]*Bus{NewBus(5, 300)})
	b, ok := f.FindByID(5)
	require.True(t, ok)
	require.Equal(t, 5, b.ID)

	_, ok = f.FindByID(99)
	require.False(t, ok)
}
