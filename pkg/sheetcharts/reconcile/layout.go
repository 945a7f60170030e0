package reconcile

import (
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// WeeklyColumnSpacing is the number of grid columns between weekly charts.
const WeeklyColumnSpacing = 4

// WeeklyPlacement returns the placement of week n (1-based): same row as base,
// shifted right by (n-1) * WeeklyColumnSpacing columns, 400x400 unless base sets a size.
func WeeklyPlacement(base models.Placement, n int) models.Placement {
	p := base
	p.Col = base.Col + (n-1)*WeeklyColumnSpacing
	if p.Width <= 0 {
		p.Width = models.WeeklyWidthPixels
	}
	if p.Height <= 0 {
		p.Height = models.WeeklyHeightPixels
	}
	return p
}

// WeeklyTitle returns the chart title of a week bucket.
func WeeklyTitle(b models.WeekBucket) string {
	return fmt.Sprintf("Week %d : %s - %s", b.Number, b.StartLabel, b.EndLabel)
}
