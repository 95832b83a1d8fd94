package model

import "time"

// OrderStatus is the canonical lifecycle stage of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderConfirmed  OrderStatus = "Confirmed"
	OrderProcessing OrderStatus = "Processing"
	OrderDone       OrderStatus = "Done"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

type DiscountType string

const (
	DiscountMoney   DiscountType = "money"
	DiscountPercent DiscountType = "percent"
)

type ServiceType string

const (
	ServiceRepair   ServiceType = "Repair"
	ServiceCleaning ServiceType = "Cleaning"
	ServicePlating  ServiceType = "Plating"
	ServiceDyeing   ServiceType = "Dyeing"
	ServiceCustom   ServiceType = "Custom"
	ServiceProduct  ServiceType = "Product"
)

// Order owns its items; items are deleted with the order. Status is always
// derivable from the statuses of the non-product items, except transiently
// while a mutation is in flight.
type Order struct {
	ID               string       `json:"id"`
	CustomerID       string       `json:"customer_id"`
	CustomerName     string       `json:"customer_name"`
	Items            []OrderItem  `json:"items"`
	TotalAmount      float64      `json:"total_amount"`
	Deposit          float64      `json:"deposit"`
	Status           OrderStatus  `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	ExpectedDelivery string       `json:"expected_delivery"`
	Notes            string       `json:"notes"`
	Discount         float64      `json:"discount"`
	DiscountType     DiscountType `json:"discount_type"`
	AdditionalFees   float64      `json:"additional_fees"`
	SurchargeReason  string       `json:"surcharge_reason"`
}

// OrderItem tracks one line of work. Status holds the id of the workflow
// stage the item currently occupies, or a terminal keyword.
type OrderItem struct {
	ID               string              `json:"id"`
	OrderID          string              `json:"order_id"`
	Name             string              `json:"name"`
	ServiceType      ServiceType         `json:"service_type"`
	Price            float64             `json:"price"`
	Quantity         int                 `json:"quantity"`
	IsProduct        bool                `json:"is_product"`
	Status           string              `json:"status"`
	TechnicianID     string              `json:"technician_id"`
	BeforeImages     []string            `json:"before_images"`
	AfterImages      []string            `json:"after_images"`
	ServiceID        string              `json:"service_id"`
	WorkflowID       string              `json:"workflow_id"`
	History          []StageHistoryEntry `json:"history"`
	TechnicalLog     []TechnicalLogEntry `json:"technical_log"`
	Notes            string              `json:"notes"`
	AssignedMembers  []string            `json:"assigned_members"`
	Commissions      map[string]float64  `json:"commissions"`
	StageAssignments map[string]string   `json:"stage_assignments"`
}

// StageHistoryEntry records one stay inside a stage. At most one entry per
// item has a nil LeftAt: the open entry for the current stage.
type StageHistoryEntry struct {
	StageID     string        `json:"stage_id"`
	StageName   string        `json:"stage_name"`
	EnteredAt   time.Time     `json:"entered_at"`
	LeftAt      *time.Time    `json:"left_at,omitempty"`
	Duration    time.Duration `json:"duration"`
	PerformedBy string        `json:"performed_by"`
}

// TechnicalLogEntry is an append-only technician note, tagged with the stage
// that was active when it was written.
type TechnicalLogEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Stage     string    `json:"stage"`
}
