package routes

import (
	"github.com/gin-gonic/gin"

	"marketplace-api/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, h *handlers.Marketplace) {
	router.GET("/", h.Root)
	router.GET("/schema", h.Schema)
	router.GET("/test", h.Diagnostics)

	router.POST("/products", h.CreateProduct)
	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)
	router.GET("/categories", h.ListCategories)

	router.POST("/orders", h.CreateOrder)
	router.GET("/orders", h.ListOrders)
}
