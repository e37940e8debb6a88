package generate

import (
	"errors"
	"net/http"

	"codeberg.org/llamaquill/quill/internal/blog"
	apperrors "codeberg.org/llamaquill/quill/internal/errors"
	"codeberg.org/llamaquill/quill/internal/metrics"
	"github.com/gin-gonic/gin"
)

// creates a handler for blog generation
func Handler(generator Generator, gate *blog.Gate, defaults blog.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.BadRequest(c, "invalid request body", err)
			return
		}

		if err := blog.CheckTopicLength(req.Topic); err != nil {
			metrics.RecordValidationFailure(blog.FieldTopic)
			apperrors.ValidationError(c, err.Field, err.Message)
			return
		}

		request, err := generator.Prepare(req.toForm(defaults))
		if err != nil {
			var verr *blog.ValidationError
			if errors.As(err, &verr) {
				apperrors.ValidationError(c, verr.Field, verr.Message)
				return
			}

			apperrors.BadRequest(c, "invalid request", err)
			return
		}

		if err := gate.TryAcquire(); err != nil {
			metrics.RecordBusy()
			apperrors.GenerationInProgress(c)
			return
		}
		defer gate.Release()

		result := generator.Generate(c.Request.Context(), request)
		if result.Failed() {
			apperrors.GenerationFailed(c, result.Failure.Message, result.Failure.Hints)
			return
		}

		c.JSON(http.StatusOK, Response{
			Text:  result.Text,
			Model: request.Model(),
		})
	}
}
