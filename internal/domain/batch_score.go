package domain

import (
	m "github.com/synnheal/stepcalc/internal/model"
)

// batchScore returns the share of solved reports. An empty batch scores 1.
func batchScore(reports []m.Report) float64 {
	if len(reports) == 0 {
		return 1
	}

	solved := 0

	for _, report := range reports {
		if report.Status == m.Solved {
			solved++
		}
	}

	return float64(solved) / float64(len(reports))
}
