// Package sheetcharts turns a date and metric grid into charts kept in sync
// with a chart backend.
package sheetcharts

import (
	"fmt"
	"log/slog"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/metrics"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
)

// Mode represents the chart synthesis mode.
type Mode string

const (
	// ModeWhole keeps one chart over the whole data span.
	ModeWhole Mode = "whole"
	// ModeWeekly keeps one chart per calendar week, Monday to Sunday.
	ModeWeekly Mode = "weekly"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWhole, ModeWeekly:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: invalid mode %q (must be whole or weekly)", ErrInvalidArgument, s)
}

// Options configures a sync.
type Options struct {
	// Mode specifies whole-dataset or weekly charts.
	Mode Mode
	// Padding is added below the minimum and above the maximum of the value axis.
	// If nil, defaults to parser.DefaultPadding.
	Padding *float64
	// Logger receives progress logs. If nil, nothing is logged.
	Logger *slog.Logger
	// Metrics receives run metrics. May be nil.
	Metrics *metrics.Collector
}

// DefaultOptions returns default sync options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeWhole,
	}
}

// AxisPadding returns the value-axis padding to use.
func (o Options) AxisPadding() float64 {
	if o.Padding != nil {
		return *o.Padding
	}
	return parser.DefaultPadding
}

// ShouldPartitionWeeks returns whether one chart per week is built.
func (o Options) ShouldPartitionWeeks() bool {
	return o.Mode == ModeWeekly
}
