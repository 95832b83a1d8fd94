package model

// Collections bundles the six synchronized entity collections plus the
// read-only service catalog, in the shape the cache snapshot and the
// bootstrap fan-out exchange them.
type Collections struct {
	Orders    []Order              `json:"orders"`
	Customers []Customer           `json:"customers"`
	Inventory []InventoryItem      `json:"inventory"`
	Members   []Member             `json:"members"`
	Products  []Product            `json:"products"`
	Workflows []WorkflowDefinition `json:"workflows"`
	Services  []ServiceDefinition  `json:"services"`
}
