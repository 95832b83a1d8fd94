package api

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dungvu242k3/XoXo-sub001/internal/api/handler"
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
	"github.com/dungvu242k3/XoXo-sub001/pkg/response"
)

// NewRouter wires the console routes over the store.
func NewRouter(st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(100), 200)))

	h := handler.New(st)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/orders", h.ListOrders)
		v1.POST("/orders", h.CreateOrder)
		v1.PUT("/orders/:id", h.UpdateOrder)
		v1.DELETE("/orders/:id", h.DeleteOrder)
		v1.POST("/orders/:id/status", h.SetOrderStatus)
		v1.POST("/orders/:id/items/:itemID/advance", h.AdvanceItem)

		v1.GET("/customers", h.ListCustomers)
		v1.POST("/customers", h.AddCustomer)
		v1.PUT("/customers/:id", h.UpdateCustomer)
		v1.DELETE("/customers/:id", h.DeleteCustomer)

		v1.GET("/inventory", h.ListInventory)
		v1.POST("/inventory", h.AddInventoryItem)
		v1.PUT("/inventory/:id", h.UpdateInventoryItem)
		v1.DELETE("/inventory/:id", h.DeleteInventoryItem)

		v1.GET("/members", h.ListMembers)
		v1.POST("/members", h.AddMember)
		v1.PUT("/members/:id", h.UpdateMember)
		v1.DELETE("/members/:id", h.DeleteMember)

		v1.GET("/products", h.ListProducts)
		v1.POST("/products", h.AddProduct)
		v1.PUT("/products/:id", h.UpdateProduct)
		v1.DELETE("/products/:id", h.DeleteProduct)

		v1.GET("/workflows", h.ListWorkflows)

		v1.POST("/reload/:entity", h.Reload)
	}
	return r
}

func rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				response.Response{Code: http.StatusTooManyRequests, Message: "too many requests"})
			return
		}
		c.Next()
	}
}
