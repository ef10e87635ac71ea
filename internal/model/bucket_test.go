package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveBucket(t *testing.T) {
	morning := Window{Start: 7 * 3600, End: 9 * 3600}
	evening := Window{Start: 17 * 3600, End: 19 * 3600}

	require.Equal(t, Morning, ResolveBucket(8*3600, morning, evening))
	require.Equal(t, Evening, ResolveBucket(18*3600, morning, evening))
	require.Equal(t, OffPeak, ResolveBucket(12*3600, morning, evening))
}

func TestResolveBucketWrapsNegative(t *testing.T) {
	morning := Window{Start: 7 * 3600, End: 9 * 3600}
	evening := Window{Start: 17 * 3600, End: 19 * 3600}

	// one full day before the morning window should resolve the same way
	require.Equal(t, Morning, ResolveBucket(8*3600-SecondsPerDay, morning, evening))
}
