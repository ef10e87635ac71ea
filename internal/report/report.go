// Package report aggregates end-of-run metrics and renders them as a CSV
// file and a console table (adapted from the teacher's sim/report.go).
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Summary carries end-of-run metrics needed for reporting (spec.md §4.4 step
// 6, §9 open question 3; SPEC_FULL §3 "per-run summary report").
type Summary struct {
	BusesOnRoute int
	Generated    int
	Served       int

	// HeadwayDevSum / HeadwayDevContribs are the running sum of squared
	// relative headway deviation and its sample count.
	HeadwayDevSum      float64
	HeadwayDevContribs int

	// FleetSize normalizes the headway-deviation mean by fleet.size()-1
	// (spec.md §9 open question 3's resolution — see DESIGN.md).
	FleetSize int
}

// HeadwayDevMean returns the mean squared relative headway deviation,
// normalized by fleet.size()-1, or 0 if there is no meaningful denominator.
func (s Summary) HeadwayDevMean() float64 {
	denom := s.FleetSize - 1
	if denom <= 0 {
		return 0
	}
	return s.HeadwayDevSum / float64(denom)
}

// WriteCSVReport writes a CSV report to the given path or directory. If
// reportPath is a directory, it creates a timestamped file inside. If
// reportPath is a file, a timestamp is suffixed before the extension.
func WriteCSVReport(reportPath string, sum Summary) (string, error) {
	if reportPath == "" {
		return "", nil
	}
	ts := time.Now().Format("20060102-150405")
	outPath := reportPath
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		outPath = filepath.Join(outPath, fmt.Sprintf("report-%s.csv", ts))
	} else {
		ext := filepath.Ext(outPath)
		base := outPath[:len(outPath)-len(ext)]
		outPath = fmt.Sprintf("%s-%s%s", base, ts, ext)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	round4 := func(x float64) float64 { return math.Round(x*10000) / 10000 }
	fmt.Fprintln(f, "buses,generated,served,headway_dev_mean,timestamp")
	fmt.Fprintf(f, "%d,%d,%d,%.4f,%s\n", sum.BusesOnRoute, sum.Generated, sum.Served, round4(sum.HeadwayDevMean()), ts)
	return outPath, nil
}

// PrintConsoleReport renders a human-readable summary table to stdout.
func PrintConsoleReport(sum Summary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Buses on route", fmt.Sprintf("%d", sum.BusesOnRoute)})
	table.Append([]string{"Passengers generated", fmt.Sprintf("%d", sum.Generated)})
	table.Append([]string{"Passengers served", fmt.Sprintf("%d", sum.Served)})
	table.Append([]string{"Headway deviation (mean sq., rel.)", fmt.Sprintf("%.4f", sum.HeadwayDevMean())})
	table.Render()
}
