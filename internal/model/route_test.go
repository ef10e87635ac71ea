package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteInsertSortedByMileage(t *testing.T) {
	r := NewRoute()
	r.InsertStop(NewStop(0, "Origin", 0))
	r.InsertSignal(&Signal{ID: 0, Name: "Light A", Mileage: 150})
	r.InsertStop(NewStop(1, "Second", 500))
	r.InsertSignal(&Signal{ID: 1, Name: "Light B", Mileage: 320})

	require.Len(t, r.Elements, 4)
	var mileages []float64
	for _, e := range r.Elements {
		mileages = append(mileages, e.Mileage)
	}
	require.Equal(t, []float64{0, 150, 320, 500}, mileages)
}

func TestRouteFindStopNotFound(t *testing.T) {
	r := NewRoute()
	_, err := r.FindStop(42)
	require.Error(t, err)
	var nf *ErrNotFound
	require.ErrorAs(t, err, &nf)
}

func TestRouteNextElementFinal(t *testing.T) {
	r := NewRoute()
	r.InsertStop(NewStop(0, "Origin", 0))
	r.InsertStop(NewStop(1, "Last", 100))

	_, ok := r.NextElement(Element{Kind: KindStop, StopID: 1})
	require.False(t, ok)
	require.True(t, r.IsFinalElement(1))
}

func TestRouteNextStopSkipsSignals(t *testing.T) {
	r := NewRoute()
	r.InsertStop(NewStop(0, "Origin", 0))
	r.InsertSignal(&Signal{ID: 0, Name: "Light", Mileage: 50})
	r.InsertStop(NewStop(1, "Next", 100))

	next, ok := r.NextStop(0)
	require.True(t, ok)
	require.Equal(t, 1, next.ID)
}

func TestRouteHasMileage(t *testing.T) {
	r := NewRoute()
	r.InsertStop(NewStop(0, "Origin", 250))
	require.True(t, r.HasMileage(250))
	require.False(t, r.HasMileage(251))
}
