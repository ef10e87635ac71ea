package model

import "math"

// Bucket identifies a time-of-day demand regime (spec.md §3 "Stop": three
// (mean, stddev) pairs ... indexed by time-of-day bucket).
type Bucket int

const (
	Morning Bucket = iota
	Evening
	OffPeak
)

// SecondsPerDay is the wraparound period used to resolve time-of-day buckets
// and signal-plan day boundaries (spec.md §3 "Plan": "the day wraps").
const SecondsPerDay = 86400.0

// Window is a [start, end) range in seconds-of-day.
type Window struct {
	Start float64
	End   float64
}

// ResolveBucket answers which time-of-day bucket a simulation timestamp
// falls into, given the configured morning- and evening-peak windows. Any
// second of day not covered by either window is OffPeak.
func ResolveBucket(t float64, morning, evening Window) Bucket {
	sod := math.Mod(t, SecondsPerDay)
	if sod < 0 {
		sod += SecondsPerDay
	}
	if sod >= morning.Start && sod < morning.End {
		return Morning
	}
	if sod >= evening.Start && sod < evening.End {
		return Evening
	}
	return OffPeak
}

// RatePair is a (mean, stddev) pair used for alighting/boarding rate
// sampling (spec.md §3 "Stop").
type RatePair struct {
	Mean   float64
	StdDev float64
}
