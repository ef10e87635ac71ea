// Package ingest reads the stops and signals CSV files named in
// configuration and builds the model entities they describe (spec.md §6).
package ingest

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/jwmdev/brtsim/internal/model"
	"github.com/jwmdev/brtsim/internal/plan"
)

// stopRow mirrors one data row of the stops CSV: id, stopName, then three
// (mean, stddev) pairs for arrival rate and three for drop rate, in
// Morning/Evening/OffPeak order (spec.md §6 "Stops file").
type stopRow struct {
	ID              int     `csv:"id"`
	Name            string  `csv:"stopName"`
	ArrMorningMean  float64 `csv:"arrMorningMean"`
	ArrMorningSd    float64 `csv:"arrMorningSd"`
	ArrEveningMean  float64 `csv:"arrEveningMean"`
	ArrEveningSd    float64 `csv:"arrEveningSd"`
	ArrOffPeakMean  float64 `csv:"arrOffPeakMean"`
	ArrOffPeakSd    float64 `csv:"arrOffPeakSd"`
	DropMorningMean float64 `csv:"dropMorningMean"`
	DropMorningSd   float64 `csv:"dropMorningSd"`
	DropEveningMean float64 `csv:"dropEveningMean"`
	DropEveningSd   float64 `csv:"dropEveningSd"`
	DropOffPeakMean float64 `csv:"dropOffPeakMean"`
	DropOffPeakSd   float64 `csv:"dropOffPeakSd"`
}

// secondsPerHour converts passengers/hour means+stddevs to passengers/second
// (spec.md §6: "passengers/hour; divided by 3600 on ingest").
const secondsPerHour = 3600.0

// StopDefinitions parses the stops CSV, returning stops in file row order with
// Mileage left at zero (Setup assigns mileage by sampling distances).
func StopDefinitions(r io.Reader) ([]*model.Stop, error) {
	var rows []*stopRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshal stops csv")
	}

	stops := make([]*model.Stop, 0, len(rows))
	for _, row := range rows {
		s := model.NewStop(row.ID, row.Name, 0)
		s.ArrivalRate = [3]model.RatePair{
			model.Morning: {Mean: row.ArrMorningMean / secondsPerHour, StdDev: row.ArrMorningSd / secondsPerHour},
			model.Evening: {Mean: row.ArrEveningMean / secondsPerHour, StdDev: row.ArrEveningSd / secondsPerHour},
			model.OffPeak: {Mean: row.ArrOffPeakMean / secondsPerHour, StdDev: row.ArrOffPeakSd / secondsPerHour},
		}
		s.DropRate = [3]model.RatePair{
			model.Morning: {Mean: row.DropMorningMean / secondsPerHour, StdDev: row.DropMorningSd / secondsPerHour},
			model.Evening: {Mean: row.DropEveningMean / secondsPerHour, StdDev: row.DropEveningSd / secondsPerHour},
			model.OffPeak: {Mean: row.DropOffPeakMean / secondsPerHour, StdDev: row.DropOffPeakSd / secondsPerHour},
		}
		if err := validateStop(s); err != nil {
			return nil, errors.Wrapf(err, "stop id %d", row.ID)
		}
		stops = append(stops, s)
	}
	return stops, nil
}

func validateStop(s *model.Stop) error {
	for _, rp := range s.ArrivalRate {
		if rp.Mean < 0 || rp.StdDev < 0 {
			return errors.New("negative arrival rate parameter")
		}
	}
	for _, rp := range s.DropRate {
		if rp.Mean < 0 || rp.StdDev < 0 {
			return errors.New("negative drop rate parameter")
		}
	}
	return nil
}

// signalRow mirrors one data row of the signals CSV: id, lightName,
// plan-string (spec.md §6 "Signals file", §4.1).
type signalRow struct {
	ID       int    `csv:"id"`
	Name     string `csv:"lightName"`
	PlanSpec string `csv:"plan"`
}

// SignalDefinitions parses the signals CSV, compiling each row's plan-string
// via plan.Parse. Mileage is left at zero (Setup assigns it).
func SignalDefinitions(r io.Reader) ([]*model.Signal, error) {
	var rows []*signalRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshal signals csv")
	}

	signals := make([]*model.Signal, 0, len(rows))
	for _, row := range rows {
		p, err := plan.Parse(row.PlanSpec)
		if err != nil {
			return nil, errors.Wrapf(err, "signal id %d: parse plan", row.ID)
		}
		signals = append(signals, &model.Signal{ID: row.ID, Name: row.Name, Plan: p})
	}
	return signals, nil
}
