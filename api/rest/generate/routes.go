package generate

import (
	"codeberg.org/llamaquill/quill/internal/blog"
	"github.com/gin-gonic/gin"
)

// registers blog generation routes. middleware runs before the handler.
func RegisterRoutes(router *gin.RouterGroup, generator Generator, gate *blog.Gate, defaults blog.Settings, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, Handler(generator, gate, defaults))
	router.POST("/generate", handlers...)
}
