// Package output serializes chart requests and inventories to JSON.
package output

import (
	"encoding/json"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// ToJSON serializes a batch update body.
func ToJSON(batch *models.BatchUpdate, pretty bool) ([]byte, error) {
	return marshal(batch, pretty)
}

// InventoryToJSON serializes a chart inventory.
func InventoryToJSON(inv *models.Inventory, pretty bool) ([]byte, error) {
	return marshal(inv, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
