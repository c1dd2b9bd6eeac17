// Package stats contains rep metrics, aggregation and reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/netset/internal/model"
)

const placeholder = "-"

// RenderReport prints the per-rep table and summary lines.
func RenderReport(w io.Writer, report model.Report) error {
	if _, err := fmt.Fprintln(w, "Set Report"); err != nil {
		return err
	}
	if len(report.Reps) == 0 {
		_, err := fmt.Fprintln(w, "No reps recorded.")
		return err
	}

	headers := []string{"Rep", "Color", "Points", "Peak (m)", "Above net (cm)", "Width (m)", "Dir"}
	rows := make([][]string, 0, len(report.Reps))
	for i, r := range report.Reps {
		label := fmt.Sprintf("%d", r.Index+1)
		if i == report.Summary.BestRep {
			label += "*"
		}
		rows = append(rows, []string{
			label,
			r.Color,
			fmt.Sprintf("%d", r.Points),
			formatMeters(r.Metrics.PeakHeightM),
			formatCentimeters(r.Metrics.AboveNetCM),
			formatMeters(r.Metrics.WidthM),
			r.Metrics.Direction.Arrow(),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderSummary(w, report)
}

// RenderSummary prints the aggregate lines of a report.
func RenderSummary(w io.Writer, report model.Report) error {
	s := report.Summary
	best := placeholder
	if s.BestRep >= 0 && s.BestPeakM != nil {
		best = fmt.Sprintf("%s (rep %d)", formatMeters(s.BestPeakM), s.BestRep+1)
	}
	lines := []string{
		fmt.Sprintf("Reps: %d", len(report.Reps)),
		fmt.Sprintf("Best peak: %s", best),
		fmt.Sprintf("Avg peak: %s", formatMeters(s.AveragePeakM)),
		fmt.Sprintf("Avg width: %s", formatMeters(s.AverageWidthM)),
	}
	if strip := PeakStrip(report.Reps); strip != "" {
		lines = append(lines, fmt.Sprintf("Peaks: [%s]", strip))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatMeters(v *float64) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatCentimeters(v *int) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%+d", *v)
}
