package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
	"github.com/dungvu242k3/XoXo-sub001/pkg/response"
)

// The flat-record entities share one handler shape: list the collection,
// bind-and-add, bind-and-update, delete by id.

func (h *Handler) ListCustomers(c *gin.Context) { response.Success(c, h.store.Customers()) }
func (h *Handler) ListInventory(c *gin.Context) { response.Success(c, h.store.Inventory()) }
func (h *Handler) ListMembers(c *gin.Context)   { response.Success(c, h.store.Members()) }
func (h *Handler) ListProducts(c *gin.Context)  { response.Success(c, h.store.Products()) }
func (h *Handler) ListWorkflows(c *gin.Context) { response.Success(c, h.store.Workflows()) }

func (h *Handler) AddCustomer(c *gin.Context) {
	var record model.Customer
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	added, err := h.store.AddCustomer(c.Request.Context(), record)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, added)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var record model.Customer
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	record.ID = c.Param("id")
	if err := h.store.UpdateCustomer(c.Request.Context(), record); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.store.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) AddInventoryItem(c *gin.Context) {
	var record model.InventoryItem
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	added, err := h.store.AddInventoryItem(c.Request.Context(), record)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, added)
}

func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	var record model.InventoryItem
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	record.ID = c.Param("id")
	if err := h.store.UpdateInventoryItem(c.Request.Context(), record); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	if err := h.store.DeleteInventoryItem(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) AddMember(c *gin.Context) {
	var record model.Member
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	added, err := h.store.AddMember(c.Request.Context(), record)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, added)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	var record model.Member
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	record.ID = c.Param("id")
	if err := h.store.UpdateMember(c.Request.Context(), record); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) DeleteMember(c *gin.Context) {
	if err := h.store.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) AddProduct(c *gin.Context) {
	var record model.Product
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	added, err := h.store.AddProduct(c.Request.Context(), record)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, added)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var record model.Product
	if err := c.ShouldBindJSON(&record); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	record.ID = c.Param("id")
	if err := h.store.UpdateProduct(c.Request.Context(), record); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
