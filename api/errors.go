package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorClassifier turns the last error recorded on the context, or a panic,
// into the uniform {responseCode, responseMessage} body.
func ErrorClassifier(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				respondError(c, log, fmt.Errorf("panic: %v", r))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		respondError(c, log, c.Errors.Last().Err)
	}
}

func respondError(c *gin.Context, log *zap.Logger, err error) {
	resp := apperr.Classify(err)
	log.Error("request failed",
		zap.Int("code", resp.ResponseCode),
		zap.String("message", resp.ResponseMessage),
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err))
	c.AbortWithStatusJSON(resp.ResponseCode, resp)
}

// fail answers the outcomes handlers own and leaves the rest to ErrorClassifier.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, pagination.ErrInvalid):
		c.AbortWithStatusJSON(http.StatusBadRequest, apperr.Response{
			ResponseCode:    http.StatusBadRequest,
			ResponseMessage: apperr.MsgInvalidPagination,
		})
	case errors.Is(err, apperr.ErrForbidden):
		forbid(c)
	default:
		_ = c.Error(err)
		c.Abort()
	}
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, apperr.Response{
		ResponseCode:    http.StatusForbidden,
		ResponseMessage: "Forbidden.",
	})
}

// bindJSON decodes the body into v. Decoding failures other than validation
// are reported as bad arguments.
func bindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return apperr.BadArgument("%v", err)
}
