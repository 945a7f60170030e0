package parser

import (
	"sort"
	"time"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PartitionWeeks groups the rows with a date and a numeric metric into
// Monday-Sunday buckets numbered in chronological order. Rows are assigned by
// date, not by grid order, so a bucket's row range may cover rows of other buckets.
func PartitionWeeks(grid models.Grid, dateCol, metricCol ColumnIndex) []models.WeekBucket {
	var points []models.Record
	for _, rec := range Records(grid, dateCol, metricCol) {
		if rec.Value != nil {
			points = append(points, rec)
		}
	}
	if len(points) == 0 {
		return nil
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	var buckets []models.WeekBucket
	for _, p := range points {
		start := WeekStart(p.Date)
		if n := len(buckets); n > 0 && buckets[n-1].Start.Equal(start) {
			buckets[n-1].Records = append(buckets[n-1].Records, p)
			continue
		}
		end := start.AddDate(0, 0, 6)
		buckets = append(buckets, models.WeekBucket{
			Number:     len(buckets) + 1,
			Start:      start,
			End:        end,
			StartLabel: start.Format(DateLayout),
			EndLabel:   end.Format(DateLayout),
			Records:    []models.Record{p},
		})
	}

	for i := range buckets {
		lo, hi := rowBounds(buckets[i].Records)
		buckets[i].X = models.ColumnRange(0, lo, hi+1, dateCol.Int())
		buckets[i].Y = models.ColumnRange(0, lo, hi+1, metricCol.Int())
	}

	return buckets
}

// rowBounds returns the lowest and highest grid row of records.
func rowBounds(records []models.Record) (lo, hi int) {
	lo, hi = records[0].Row, records[0].Row
	for _, rec := range records[1:] {
		if rec.Row < lo {
			lo = rec.Row
		}
		if rec.Row > hi {
			hi = rec.Row
		}
	}
	return lo, hi
}
