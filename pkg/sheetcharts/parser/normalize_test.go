package parser

import (
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"2025-09-01", "2025-09-01", true},
		{"01/09/25", "2025-09-01", true},
		{"1/9/25", "2025-09-01", true},
		{"31/12/24", "2024-12-31", true},
		{"Σεπτέμβριος", "Σεπτέμβριος", false},
		{"13/13/25", "13/13/25", false},
	}

	for _, tt := range tests {
		result, ok := NormalizeDate(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("NormalizeDate(%q) = %q, %v, expected %q, %v", tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestNormalizeMetric(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"72,3", "72.3", true},
		{"72.34", "72.3", true},
		{"70", "70.0", true},
		{" 69,96 ", "70.0", true},
		{"-", "-", false},
	}

	for _, tt := range tests {
		result, ok := NormalizeMetric(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("NormalizeMetric(%q) = %q, %v, expected %q, %v", tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestNormalizeRows(t *testing.T) {
	grid := models.Grid{
		{"01/01/25", "", "", "Weight"},
		{"06/01/25", "", "", "70,5"},
		{"2025-01-07", "", "", "70.0"},
		{"January"},
	}

	updates := NormalizeRows(grid, 0, 3)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d: %+v", len(updates), updates)
	}
	if updates[0] != (CellUpdate{Row: 1, Col: 0, Old: "06/01/25", New: "2025-01-06"}) {
		t.Errorf("unexpected date update %+v", updates[0])
	}
	if updates[1] != (CellUpdate{Row: 1, Col: 3, Old: "70,5", New: "70.5"}) {
		t.Errorf("unexpected metric update %+v", updates[1])
	}
}
