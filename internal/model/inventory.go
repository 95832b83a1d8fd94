package model

import "time"

type InventoryCategory string

const (
	CategoryChemical   InventoryCategory = "Chemical"
	CategoryAccessory  InventoryCategory = "Accessory"
	CategoryTool       InventoryCategory = "Tool"
	CategoryConsumable InventoryCategory = "Consumable"
)

type InventoryItem struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Category  InventoryCategory `json:"category"`
	Quantity  float64           `json:"quantity"`
	Unit      string            `json:"unit"`
	UnitPrice float64           `json:"unit_price"`
	MinStock  float64           `json:"min_stock"`
	Supplier  string            `json:"supplier"`
	UpdatedAt time.Time         `json:"updated_at"`
}
