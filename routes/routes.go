package routes

import (
	"net/http"

	"github.com/akjilan/digital-ecommerce/common/auth"
	commonmw "github.com/akjilan/digital-ecommerce/common/middleware"
	"github.com/akjilan/digital-ecommerce/controllers"
	"github.com/akjilan/digital-ecommerce/middleware"

	"github.com/gin-gonic/gin"
)

const ServiceName = "storefront-service"

// RegisterRoutes sets up the catalog, chat and health routes.
func RegisterRoutes(r *gin.Engine, catalog *controllers.CatalogController, chat *controllers.ChatController, validator *auth.TokenValidator, chatRatePerMinute int) {
	r.GET("/products", catalog.ListProducts)

	chatRoutes := r.Group("/chat")
	{
		chatRoutes.POST("/message",
			commonmw.RateLimitMiddleware(chatRatePerMinute),
			middleware.OptionalAuth(validator),
			chat.SendMessage,
		)
		chatRoutes.GET("/history", middleware.RequireAuth(validator), chat.History)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": ServiceName})
	})
}
