package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	success := testutil.ToFloat64(GenerationTotal.WithLabelValues("test", OutcomeSuccess))
	failure := testutil.ToFloat64(GenerationTotal.WithLabelValues("test", OutcomeFailure))
	network := testutil.ToFloat64(GenerationFailures.WithLabelValues("test", "network"))

	RecordGeneration("test", time.Second, "")
	RecordGeneration("test", time.Second, "network")

	assert.Equal(t, success+1, testutil.ToFloat64(GenerationTotal.WithLabelValues("test", OutcomeSuccess)))
	assert.Equal(t, failure+1, testutil.ToFloat64(GenerationTotal.WithLabelValues("test", OutcomeFailure)))
	assert.Equal(t, network+1, testutil.ToFloat64(GenerationFailures.WithLabelValues("test", "network")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "200")))
}
