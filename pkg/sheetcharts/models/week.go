package models

import "time"

// WeekBucket groups the records of one Monday-Sunday week.
type WeekBucket struct {
	// Number is the 1-based chronological sequence number.
	Number int `json:"number"`
	// Start is the Monday of the week.
	Start time.Time `json:"start"`
	// End is the Sunday of the week.
	End time.Time `json:"end"`
	// StartLabel is Start formatted YYYY-MM-DD.
	StartLabel string `json:"start_label"`
	// EndLabel is End formatted YYYY-MM-DD.
	EndLabel string `json:"end_label"`
	// X is the date column range. SheetID is left zero.
	X RowRange `json:"x"`
	// Y is the metric column range. SheetID is left zero.
	Y RowRange `json:"y"`
	// Records holds the member rows in chronological order.
	Records []Record `json:"records"`
}

// Values returns the numeric metric values of the bucket's records.
func (w WeekBucket) Values() []float64 {
	values := make([]float64, 0, len(w.Records))
	for _, rec := range w.Records {
		if rec.Value != nil {
			values = append(values, *rec.Value)
		}
	}
	return values
}

// Contains reports whether t falls within [Start, End] by calendar date.
func (w WeekBucket) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End.AddDate(0, 0, 1))
}
