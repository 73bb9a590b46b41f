// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/money"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalog  *catalog.Cache
	wishlist *wishlist.Service
	logger   logrus.FieldLogger
}

// NewProductHandler creates a new product handler
func NewProductHandler(cache *catalog.Cache, wishlistService *wishlist.Service, logger logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		catalog:  cache,
		wishlist: wishlistService,
		logger:   logger,
	}
}

// ProductResponse is a product card annotated for the current visitor
type ProductResponse struct {
	catalog.Product
	OriginalPrice *money.Amount `json:"originalPrice,omitempty"`
	InWishlist    bool          `json:"in_wishlist"`
}

// ProductDetailResponse is the product modal
type ProductDetailResponse struct {
	ProductResponse
	DisplayDetails map[string]string `json:"display_details"`
}

func newProductResponse(p catalog.Product, inWishlist bool) ProductResponse {
	resp := ProductResponse{Product: p, InWishlist: inWishlist}
	if p.HasDiscount() {
		original := p.OriginalPrice()
		resp.OriginalPrice = &original
	}
	return resp
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := c.DefaultQuery("filter", catalog.FilterAll)
	sortKey := c.DefaultQuery("sort", catalog.SortRelevance)
	search := c.Query("search")

	if h.catalog.LoadError() != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": catalog.UnavailableMessage,
			"data": gin.H{
				"products": []ProductResponse{},
				"count":    0,
			},
		})
		return
	}

	names, err := h.wishlist.Names(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	products := catalog.Project(catalog.Search(h.catalog.Products(), search), filter, sortKey)
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p, names[p.Name]))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": out,
			"count":    len(out),
			"filter":   filter,
			"sort":     sortKey,
			"search":   search,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, found := h.catalog.Find(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	inWishlist, err := h.wishlist.Contains(c.Request.Context(), middleware.GetSessionID(c), p.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": ProductDetailResponse{
			ProductResponse: newProductResponse(p, inWishlist),
			DisplayDetails:  p.DisplayDetails(),
		},
	})
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.Categories(),
	})
}
