package parser

import (
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

func TestFormatA1(t *testing.T) {
	tests := []struct {
		sheet    string
		r        models.RowRange
		expected string
	}{
		{"Sheet1", models.ColumnRange(0, 1, 4, 0), "Sheet1!$A$2:$A$4"},
		{"My Data", models.ColumnRange(0, 1, 2, 3), "'My Data'!$D$2:$D$2"},
		{"", models.ColumnRange(0, 0, 10, 1), "$B$1:$B$10"},
	}

	for _, tt := range tests {
		if result := FormatA1(tt.sheet, tt.r); result != tt.expected {
			t.Errorf("FormatA1(%q, %+v) = %q, expected %q", tt.sheet, tt.r, result, tt.expected)
		}
	}
}

func TestParseA1Range(t *testing.T) {
	tests := []struct {
		ref      string
		sheet    string
		expected models.RowRange
		wantErr  bool
	}{
		{"Sheet1!$A$2:$A$4", "Sheet1", models.ColumnRange(0, 1, 4, 0), false},
		{"'My Data'!$D$2:$D$2", "My Data", models.ColumnRange(0, 1, 2, 3), false},
		{"B3", "", models.ColumnRange(0, 2, 3, 1), false},
		{"A1:B2:C3", "", models.RowRange{}, true},
		{"Sheet1!XX", "", models.RowRange{}, true},
	}

	for _, tt := range tests {
		sheet, r, err := ParseA1Range(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseA1Range(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if sheet != tt.sheet || r != tt.expected {
			t.Errorf("ParseA1Range(%q) = %q, %+v, expected %q, %+v", tt.ref, sheet, r, tt.sheet, tt.expected)
		}
	}
}
