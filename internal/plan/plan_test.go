package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBadFieldCount(t *testing.T) {
	_, err := Parse("/0000/90/0/")
	require.Error(t, err)
	var bad *ErrBadFormat
	require.ErrorAs(t, err, &bad)
}

func TestParseSingleSegment(t *testing.T) {
	p, err := Parse("/0000/60/0/0,30/")
	require.NoError(t, err)
	require.Len(t, p.Segments, 1)
	require.Equal(t, 60.0, p.Segments[0].Cycle)
}

// TestStatusGreenScenario mirrors spec.md Scenario C: a signal on a 60s
// cycle with a 0-30s green window; a bus arrives mid-green.
func TestStatusGreenScenario(t *testing.T) {
	p, err := Parse("/0000/60/0/0,30/")
	require.NoError(t, err)

	wait, err := p.Status(25215)
	require.NoError(t, err)
	require.Equal(t, 0.0, wait)
}

// TestStatusRedScenario mirrors spec.md Scenario D: the same signal, a bus
// arrives during red and must wait 20s for the cycle to return to green.
func TestStatusRedScenario(t *testing.T) {
	p, err := Parse("/0000/60/0/0,30/")
	require.NoError(t, err)

	wait, err := p.Status(25240)
	require.NoError(t, err)
	require.Equal(t, 20.0, wait)
}

func TestStatusDayWrap(t *testing.T) {
	p, err := Parse("/2300/60/0/0,30/")
	require.NoError(t, err)

	// 23:30 (84600s) is second 0 of the 60s cycle -> green.
	wait, err := p.Status(23*3600 + 30*60)
	require.NoError(t, err)
	require.Equal(t, 0.0, wait)

	// 00:05 the next calendar day wraps back into the same last segment.
	wait, err = p.Status(5 * 60)
	require.NoError(t, err)
	require.Equal(t, 0.0, wait)
}

func TestStatusNoMatchingSegment(t *testing.T) {
	p := &Plan{Segments: nil}
	_, err := p.Status(100)
	require.ErrorIs(t, err, ErrNoMatchingSegment)
}
