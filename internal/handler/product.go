package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonyprachine123/test-2/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the product catalog
type ProductHandler struct {
	productService service.ProductService
	log            *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService service.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		log:            log,
	}
}

// GetProducts lists every product, newest first
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrProductNotFound)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct accepts a multipart form with an optional image, or JSON
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	cmd, err := bindProductCommand(c)
	if err != nil {
		bindFailed(c, h.log, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct writes the supplied fields only
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrProductNotFound)
	if !ok {
		return
	}

	cmd, err := bindProductCommand(c)
	if err != nil {
		bindFailed(c, h.log, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its uploaded image
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, service.ErrProductNotFound)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
