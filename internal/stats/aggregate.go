// Package stats contains rep metrics, aggregation and reporting.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/netset/internal/calib"
	"github.com/verte-zerg/netset/internal/model"
)

// BuildReport computes metrics for every rep and the cross-rep summary.
func BuildReport(sessionID string, reps []model.Rep, g *calib.Geometry) model.Report {
	out := make([]model.RepReport, len(reps))
	for i, rep := range reps {
		out[i] = model.RepReport{
			Index:   i,
			Color:   rep.Color,
			Points:  len(rep.Points),
			Metrics: ComputeMetrics(rep, g),
		}
	}
	return model.Report{
		SessionID: sessionID,
		Reps:      out,
		Summary:   Aggregate(out),
	}
}

// Aggregate finds the best peak and averages peak and width over reps that
// have a value. The first rep wins a tie for best peak.
func Aggregate(reps []model.RepReport) model.Summary {
	summary := model.Summary{BestRep: -1}
	var peaks, widths []float64
	for i, r := range reps {
		if p := r.Metrics.PeakHeightM; p != nil {
			peaks = append(peaks, *p)
			if summary.BestPeakM == nil || *p > *summary.BestPeakM {
				best := *p
				summary.BestPeakM = &best
				summary.BestRep = i
			}
		}
		if w := r.Metrics.WidthM; w != nil {
			widths = append(widths, *w)
		}
	}
	summary.AveragePeakM = mean(peaks)
	summary.AverageWidthM = mean(widths)
	return summary
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := stat.Mean(values, nil)
	return &v
}
