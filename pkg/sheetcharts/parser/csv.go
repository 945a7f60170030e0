package parser

import (
	"encoding/csv"
	"io"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// ReadCSVGrid reads comma-separated rows. Ragged rows are allowed.
func ReadCSVGrid(r io.Reader) (models.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return models.Grid(rows), nil
}
