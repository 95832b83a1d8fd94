// Package translate is the only place that knows both naming vocabularies:
// the canonical values used in memory and the tokens the remote schema
// stores. Every function is total; unknown inputs fall back to a declared
// default (fixed vocabularies) or to deterministic slug/title-case
// generation (open vocabularies).
package translate

import "github.com/dungvu242k3/XoXo-sub001/internal/model"

var orderStatusToRemote = map[model.OrderStatus]string{
	model.OrderPending:    "cho_xu_ly",
	model.OrderConfirmed:  "da_xac_nhan",
	model.OrderProcessing: "dang_xu_ly",
	model.OrderDone:       "hoan_thanh",
	model.OrderDelivered:  "da_giao",
	model.OrderCancelled:  "huy",
}

var serviceTypeToRemote = map[model.ServiceType]string{
	model.ServiceRepair:   "sua_chua",
	model.ServiceCleaning: "ve_sinh",
	model.ServicePlating:  "xi_ma",
	model.ServiceDyeing:   "nhuom",
	model.ServiceCustom:   "custom",
	model.ServiceProduct:  "san_pham",
}

var tierToRemote = map[model.CustomerTier]string{
	model.TierStandard: "thuong",
	model.TierVIP:      "vip",
	model.TierVVIP:     "vvip",
}

var memberStatusToRemote = map[model.MemberStatus]string{
	model.MemberActive:  "hoat_dong",
	model.MemberOnLeave: "nghi",
}

var categoryToRemote = map[model.InventoryCategory]string{
	model.CategoryChemical:   "hoa_chat",
	model.CategoryAccessory:  "phu_kien",
	model.CategoryTool:       "dung_cu",
	model.CategoryConsumable: "vat_tu_tieu_hao",
}

// Known department/role display values. Anything outside these tables goes
// through Slugify / TitleCase.
var departmentToRemote = map[string]string{
	"Kỹ Thuật":   "ky_thuat",
	"Tiếp Nhận":  "tiep_nhan",
	"Hoàn Thiện": "hoan_thien",
	"Quản Lý":    "quan_ly",
}

var roleToRemote = map[string]string{
	"Kỹ Thuật Viên": "ky_thuat_vien",
	"Thợ Chính":     "tho_chinh",
	"Quản Lý":       "quan_ly",
	"Thu Ngân":      "thu_ngan",
	"Học Việc":      "hoc_viec",
}

func invert[K, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var (
	orderStatusFromRemote  = invert(orderStatusToRemote)
	serviceTypeFromRemote  = invert(serviceTypeToRemote)
	tierFromRemote         = invert(tierToRemote)
	memberStatusFromRemote = invert(memberStatusToRemote)
	categoryFromRemote     = invert(categoryToRemote)
	departmentFromRemote   = invert(departmentToRemote)
	roleFromRemote         = invert(roleToRemote)
)

func OrderStatusToRemote(s model.OrderStatus) string {
	if t, ok := orderStatusToRemote[s]; ok {
		return t
	}
	return orderStatusToRemote[model.OrderPending]
}

func OrderStatusFromRemote(t string) model.OrderStatus {
	if s, ok := orderStatusFromRemote[t]; ok {
		return s
	}
	return model.OrderPending
}

func ServiceTypeToRemote(s model.ServiceType) string {
	if t, ok := serviceTypeToRemote[s]; ok {
		return t
	}
	return serviceTypeToRemote[model.ServiceCustom]
}

func ServiceTypeFromRemote(t string) model.ServiceType {
	if s, ok := serviceTypeFromRemote[t]; ok {
		return s
	}
	return model.ServiceCustom
}

func TierToRemote(s model.CustomerTier) string {
	if t, ok := tierToRemote[s]; ok {
		return t
	}
	return tierToRemote[model.TierStandard]
}

func TierFromRemote(t string) model.CustomerTier {
	if s, ok := tierFromRemote[t]; ok {
		return s
	}
	return model.TierStandard
}

func MemberStatusToRemote(s model.MemberStatus) string {
	if t, ok := memberStatusToRemote[s]; ok {
		return t
	}
	return memberStatusToRemote[model.MemberActive]
}

func MemberStatusFromRemote(t string) model.MemberStatus {
	if s, ok := memberStatusFromRemote[t]; ok {
		return s
	}
	return model.MemberActive
}

func CategoryToRemote(s model.InventoryCategory) string {
	if t, ok := categoryToRemote[s]; ok {
		return t
	}
	return categoryToRemote[model.CategoryConsumable]
}

func CategoryFromRemote(t string) model.InventoryCategory {
	if s, ok := categoryFromRemote[t]; ok {
		return s
	}
	return model.CategoryConsumable
}

// DepartmentToRemote maps known display values through the table and
// slugifies everything else, so a value invented in the UI still gets a
// stable wire token.
func DepartmentToRemote(display string) string {
	if t, ok := departmentToRemote[display]; ok {
		return t
	}
	return Slugify(display)
}

func DepartmentFromRemote(token string) string {
	if d, ok := departmentFromRemote[token]; ok {
		return d
	}
	return TitleCase(token)
}

func RoleToRemote(display string) string {
	if t, ok := roleToRemote[display]; ok {
		return t
	}
	return Slugify(display)
}

func RoleFromRemote(token string) string {
	if d, ok := roleFromRemote[token]; ok {
		return d
	}
	return TitleCase(token)
}
