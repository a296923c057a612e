package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/pkg/apperror"
)

func init() {
	// Report fields by their json names in validation messages.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// Response is the envelope every endpoint returns: a boolean status plus
// either a payload or a client-safe message.
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: true,
		Data:   data,
	}
}

func NewMessageResponse(message string) *Response {
	return &Response{
		Status:  true,
		Message: message,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  false,
		Message: message,
	}
}

// RespondError maps err onto the error taxonomy and writes the envelope.
// Internal detail is logged, never echoed to the client.
func RespondError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, NewErrorResponse("request timed out"))
		return
	}

	appErr := apperror.From(err)

	message := appErr.Message
	if appErr.Kind == apperror.KindValidation {
		if fieldMsg := validationMessage(appErr.Err); fieldMsg != "" {
			message = fieldMsg
		}
	}

	if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUpstream {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}

	c.JSON(appErr.StatusCode(), NewErrorResponse(message))
}

// validationMessage turns the first binding violation into a client-facing
// message naming the offending field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", e.Field())
	case "email":
		return fmt.Sprintf("the %s field must be a valid email address", e.Field())
	case "eqfield":
		return fmt.Sprintf("the %s field does not match", e.Field())
	case "min":
		return fmt.Sprintf("the %s field is too short", e.Field())
	case "max":
		return fmt.Sprintf("the %s field is too long", e.Field())
	case "uuid":
		return fmt.Sprintf("the %s field must be a valid ID", e.Field())
	case "oneof":
		return fmt.Sprintf("the %s field must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("the %s field is invalid", e.Field())
	}
}
