package web

import "github.com/gin-gonic/gin"

// registers the form page. middleware runs before the submit handler only.
func RegisterRoutes(router gin.IRoutes, page *Page, middleware ...gin.HandlerFunc) {
	router.GET("/", page.Show)
	router.POST("/", append(middleware, page.Submit)...)
}
