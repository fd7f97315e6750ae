package controllers

import (
	"net/http"

	"github.com/akjilan/digital-ecommerce/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	Catalog services.CatalogService
	Cache   CatalogCache
	Logger  *zap.Logger
}

// NewCatalogController wires the catalog handlers. cache may be nil.
func NewCatalogController(catalog services.CatalogService, cache CatalogCache, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		Catalog: catalog,
		Cache:   cache,
		Logger:  logger,
	}
}

// ListProducts serves GET /products.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	spec := services.CompileFilterFromQuery(c.Request.URL.Query())
	ctx := c.Request.Context()

	if cc.Cache != nil {
		if page, ok := cc.Cache.GetCatalogPage(ctx, spec); ok {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, page)
			return
		}
		c.Header("X-Cache", "MISS")
	}

	result, err := cc.Catalog.ListProducts(ctx, spec)
	if err != nil {
		cc.Logger.Error("Failed to list products", zap.Error(err))
		respondError(c, err)
		return
	}

	resp := result.Response()
	if cc.Cache != nil {
		cc.Cache.SetCatalogPageAsync(spec, resp)
	}
	c.JSON(http.StatusOK, resp)
}
