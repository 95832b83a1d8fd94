package model

// WorkflowDefinition declares the ordered stages a line item moves through,
// plus optional material requirements consumed per unit of work. Definitions
// are read-only inputs to the status engine.
type WorkflowDefinition struct {
	ID           string                `json:"id"`
	Label        string                `json:"label"`
	Description  string                `json:"description"`
	Department   string                `json:"department"`
	Color        string                `json:"color"`
	ServiceTypes []ServiceType         `json:"service_types"`
	Stages       []WorkflowStage       `json:"stages"`
	Materials    []MaterialRequirement `json:"materials,omitempty"`
}

type WorkflowStage struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Order           int      `json:"order"`
	Color           string   `json:"color"`
	Details         string   `json:"details"`
	Standards       string   `json:"standards"`
	AssignedMembers []string `json:"assigned_members"`
	TodoItems       []string `json:"todo_items"`
}

// MaterialRequirement consumes QuantityPerUnit of an inventory item for each
// unit of work an item carries.
type MaterialRequirement struct {
	InventoryItemID string  `json:"inventory_item_id"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
}

// ServiceDefinition is a service-catalog entry (external collaborator).
// WorkflowIDs is ordered by declared position; the first one is the default
// workflow for items of this service that carry none of their own.
type ServiceDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	WorkflowIDs []string `json:"workflow_ids"`
}
