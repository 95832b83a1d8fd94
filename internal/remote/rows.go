package remote

import (
	"encoding/json"
	"time"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/internal/translate"
)

// Row structs mirror the remote schema: snake_case columns, Vietnamese enum
// tokens, jsonb-style document columns stored as text. They exist only inside
// this package; everything crossing the boundary goes through translate and
// the to/from converters below.

type orderRow struct {
	ID               string    `gorm:"column:id;primaryKey"`
	CustomerID       string    `gorm:"column:customer_id;index"`
	CustomerName     string    `gorm:"column:customer_name"`
	TotalAmount      float64   `gorm:"column:total_amount"`
	Deposit          float64   `gorm:"column:deposit"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
	ExpectedDelivery string    `gorm:"column:expected_delivery"`
	Notes            string    `gorm:"column:notes"`
	Discount         float64   `gorm:"column:discount"`
	DiscountType     string    `gorm:"column:discount_type"`
	AdditionalFees   float64   `gorm:"column:additional_fees"`
	SurchargeReason  string    `gorm:"column:surcharge_reason"`
}

func (orderRow) TableName() string { return "orders" }

type orderItemRow struct {
	ID               string  `gorm:"column:id;primaryKey"`
	OrderID          string  `gorm:"column:order_id;index"`
	Name             string  `gorm:"column:name"`
	ServiceType      string  `gorm:"column:service_type"`
	Price            float64 `gorm:"column:price"`
	Quantity         int     `gorm:"column:quantity"`
	IsProduct        bool    `gorm:"column:is_product"`
	Status           string  `gorm:"column:status"`
	TechnicianID     string  `gorm:"column:technician_id"`
	BeforeImages     string  `gorm:"column:before_images"`
	AfterImages      string  `gorm:"column:after_images"`
	ServiceID        string  `gorm:"column:service_id"`
	WorkflowID       string  `gorm:"column:workflow_id"`
	History          string  `gorm:"column:history"`
	TechnicalLog     string  `gorm:"column:technical_log"`
	Notes            string  `gorm:"column:notes"`
	AssignedMembers  string  `gorm:"column:assigned_members"`
	Commissions      string  `gorm:"column:commissions"`
	StageAssignments string  `gorm:"column:stage_assignments"`
}

func (orderItemRow) TableName() string { return "order_items" }

type customerRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;index"`
	Phone      string    `gorm:"column:phone"`
	Email      string    `gorm:"column:email"`
	Address    string    `gorm:"column:address"`
	Tier       string    `gorm:"column:tier"`
	TotalSpent float64   `gorm:"column:total_spent"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (customerRow) TableName() string { return "customers" }

type inventoryRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;index"`
	Category  string    `gorm:"column:category"`
	Quantity  float64   `gorm:"column:quantity"`
	Unit      string    `gorm:"column:unit"`
	UnitPrice float64   `gorm:"column:unit_price"`
	MinStock  float64   `gorm:"column:min_stock"`
	Supplier  string    `gorm:"column:supplier"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRow) TableName() string { return "inventory_items" }

type memberRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;index"`
	Phone      string    `gorm:"column:phone"`
	Department string    `gorm:"column:department"`
	Role       string    `gorm:"column:role"`
	Status     string    `gorm:"column:status"`
	JoinedAt   time.Time `gorm:"column:joined_at"`
}

func (memberRow) TableName() string { return "members" }

type productRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;index"`
	SKU       string    `gorm:"column:sku"`
	Price     float64   `gorm:"column:price"`
	CostPrice float64   `gorm:"column:cost_price"`
	Stock     int       `gorm:"column:stock"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (productRow) TableName() string { return "products" }

type workflowRow struct {
	ID           string `gorm:"column:id;primaryKey"`
	Label        string `gorm:"column:label;index"`
	Description  string `gorm:"column:description"`
	Department   string `gorm:"column:department"`
	Color        string `gorm:"column:color"`
	ServiceTypes string `gorm:"column:service_types"`
	Stages       string `gorm:"column:stages"`
	Materials    string `gorm:"column:materials"`
}

func (workflowRow) TableName() string { return "workflows" }

type serviceRow struct {
	ID           string `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name"`
	WorkflowRefs string `gorm:"column:workflow_refs"`
}

func (serviceRow) TableName() string { return "services" }

// workflowRef is one entry of a service's ordered workflow list.
type workflowRef struct {
	WorkflowID string `json:"workflow_id"`
	Position   int    `json:"position"`
}

func marshalJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func unmarshalJSON[T any](s string) T {
	var v T
	if s != "" {
		_ = json.Unmarshal([]byte(s), &v)
	}
	return v
}

func toOrderRow(o model.Order) orderRow {
	delivery := o.ExpectedDelivery
	if norm, ok := translate.NormalizeDate(delivery); ok {
		delivery = norm
	} else {
		delivery = ""
	}
	return orderRow{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		TotalAmount:      o.TotalAmount,
		Deposit:          o.Deposit,
		Status:           translate.OrderStatusToRemote(o.Status),
		CreatedAt:        o.CreatedAt,
		ExpectedDelivery: delivery,
		Notes:            o.Notes,
		Discount:         o.Discount,
		DiscountType:     string(o.DiscountType),
		AdditionalFees:   o.AdditionalFees,
		SurchargeReason:  o.SurchargeReason,
	}
}

func fromOrderRow(r orderRow) model.Order {
	return model.Order{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		CustomerName:     r.CustomerName,
		TotalAmount:      r.TotalAmount,
		Deposit:          r.Deposit,
		Status:           translate.OrderStatusFromRemote(r.Status),
		CreatedAt:        r.CreatedAt,
		ExpectedDelivery: r.ExpectedDelivery,
		Notes:            r.Notes,
		Discount:         r.Discount,
		DiscountType:     model.DiscountType(r.DiscountType),
		AdditionalFees:   r.AdditionalFees,
		SurchargeReason:  r.SurchargeReason,
	}
}

func toItemRow(it model.OrderItem) orderItemRow {
	return orderItemRow{
		ID:               it.ID,
		OrderID:          it.OrderID,
		Name:             it.Name,
		ServiceType:      translate.ServiceTypeToRemote(it.ServiceType),
		Price:            it.Price,
		Quantity:         it.Quantity,
		IsProduct:        it.IsProduct,
		Status:           it.Status,
		TechnicianID:     it.TechnicianID,
		BeforeImages:     marshalJSON(it.BeforeImages),
		AfterImages:      marshalJSON(it.AfterImages),
		ServiceID:        it.ServiceID,
		WorkflowID:       it.WorkflowID,
		History:          marshalJSON(it.History),
		TechnicalLog:     marshalJSON(it.TechnicalLog),
		Notes:            it.Notes,
		AssignedMembers:  marshalJSON(it.AssignedMembers),
		Commissions:      marshalJSON(it.Commissions),
		StageAssignments: marshalJSON(it.StageAssignments),
	}
}

func fromItemRow(r orderItemRow) model.OrderItem {
	return model.OrderItem{
		ID:               r.ID,
		OrderID:          r.OrderID,
		Name:             r.Name,
		ServiceType:      translate.ServiceTypeFromRemote(r.ServiceType),
		Price:            r.Price,
		Quantity:         r.Quantity,
		IsProduct:        r.IsProduct,
		Status:           r.Status,
		TechnicianID:     r.TechnicianID,
		BeforeImages:     unmarshalJSON[[]string](r.BeforeImages),
		AfterImages:      unmarshalJSON[[]string](r.AfterImages),
		ServiceID:        r.ServiceID,
		WorkflowID:       r.WorkflowID,
		History:          unmarshalJSON[[]model.StageHistoryEntry](r.History),
		TechnicalLog:     unmarshalJSON[[]model.TechnicalLogEntry](r.TechnicalLog),
		Notes:            r.Notes,
		AssignedMembers:  unmarshalJSON[[]string](r.AssignedMembers),
		Commissions:      unmarshalJSON[map[string]float64](r.Commissions),
		StageAssignments: unmarshalJSON[map[string]string](r.StageAssignments),
	}
}

func toCustomerRow(c model.Customer) customerRow {
	return customerRow{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Tier:       translate.TierToRemote(c.Tier),
		TotalSpent: c.TotalSpent,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
	}
}

func fromCustomerRow(r customerRow) model.Customer {
	return model.Customer{
		ID:         r.ID,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Address:    r.Address,
		Tier:       translate.TierFromRemote(r.Tier),
		TotalSpent: r.TotalSpent,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}

func toInventoryRow(it model.InventoryItem) inventoryRow {
	return inventoryRow{
		ID:        it.ID,
		Name:      it.Name,
		Category:  translate.CategoryToRemote(it.Category),
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		UnitPrice: it.UnitPrice,
		MinStock:  it.MinStock,
		Supplier:  it.Supplier,
		UpdatedAt: it.UpdatedAt,
	}
}

func fromInventoryRow(r inventoryRow) model.InventoryItem {
	return model.InventoryItem{
		ID:        r.ID,
		Name:      r.Name,
		Category:  translate.CategoryFromRemote(r.Category),
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		UnitPrice: r.UnitPrice,
		MinStock:  r.MinStock,
		Supplier:  r.Supplier,
		UpdatedAt: r.UpdatedAt,
	}
}

func toMemberRow(m model.Member) memberRow {
	return memberRow{
		ID:         m.ID,
		Name:       m.Name,
		Phone:      m.Phone,
		Department: translate.DepartmentToRemote(m.Department),
		Role:       translate.RoleToRemote(m.Role),
		Status:     translate.MemberStatusToRemote(m.Status),
		JoinedAt:   m.JoinedAt,
	}
}

func fromMemberRow(r memberRow) model.Member {
	return model.Member{
		ID:         r.ID,
		Name:       r.Name,
		Phone:      r.Phone,
		Department: translate.DepartmentFromRemote(r.Department),
		Role:       translate.RoleFromRemote(r.Role),
		Status:     translate.MemberStatusFromRemote(r.Status),
		JoinedAt:   r.JoinedAt,
	}
}

func toProductRow(p model.Product) productRow {
	return productRow(p)
}

func fromProductRow(r productRow) model.Product {
	return model.Product(r)
}

func toWorkflowRow(w model.WorkflowDefinition) workflowRow {
	tokens := make([]string, len(w.ServiceTypes))
	for i, st := range w.ServiceTypes {
		tokens[i] = translate.ServiceTypeToRemote(st)
	}
	return workflowRow{
		ID:           w.ID,
		Label:        w.Label,
		Description:  w.Description,
		Department:   translate.DepartmentToRemote(w.Department),
		Color:        w.Color,
		ServiceTypes: marshalJSON(tokens),
		Stages:       marshalJSON(w.Stages),
		Materials:    marshalJSON(w.Materials),
	}
}

func fromWorkflowRow(r workflowRow) model.WorkflowDefinition {
	tokens := unmarshalJSON[[]string](r.ServiceTypes)
	types := make([]model.ServiceType, len(tokens))
	for i, t := range tokens {
		types[i] = translate.ServiceTypeFromRemote(t)
	}
	return model.WorkflowDefinition{
		ID:           r.ID,
		Label:        r.Label,
		Description:  r.Description,
		Department:   translate.DepartmentFromRemote(r.Department),
		Color:        r.Color,
		ServiceTypes: types,
		Stages:       unmarshalJSON[[]model.WorkflowStage](r.Stages),
		Materials:    unmarshalJSON[[]model.MaterialRequirement](r.Materials),
	}
}

func fromServiceRow(r serviceRow) model.ServiceDefinition {
	refs := unmarshalJSON[[]workflowRef](r.WorkflowRefs)
	ids := make([]string, 0, len(refs))
	for i := range refs {
		for j := i + 1; j < len(refs); j++ {
			if refs[j].Position < refs[i].Position {
				refs[i], refs[j] = refs[j], refs[i]
			}
		}
	}
	for _, ref := range refs {
		ids = append(ids, ref.WorkflowID)
	}
	return model.ServiceDefinition{ID: r.ID, Name: r.Name, WorkflowIDs: ids}
}
