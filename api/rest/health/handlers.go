package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "quill"

// reports whether a generation currently holds the gate
type BusyReporter interface {
	Busy() bool
}

// returns the server health status. the generation server itself is not
// probed.
func Handler(version, provider string, busy BusyReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:   "healthy",
			Service:  serviceName,
			Version:  version,
			Provider: provider,
			Busy:     busy != nil && busy.Busy(),
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}
