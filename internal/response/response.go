package response

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Code    string                `json:"code,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

type Page struct {
	Items    any `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error writes err with the status of its kind. Causes of server errors are
// only exposed when exposeCause is set.
func Error(c *gin.Context, err error, exposeCause bool) {
	appErr := apperror.From(err)
	msg := appErr.Message
	if appErr.Kind == apperror.KindServerError && exposeCause && appErr.Err != nil {
		msg += ": " + appErr.Err.Error()
	}

	c.AbortWithStatusJSON(apperror.HTTPStatus(appErr.Kind), Envelope{
		Success: false,
		Message: msg,
		Code:    string(appErr.Kind),
		Errors:  appErr.Fields,
	})
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageParams reads page and page_size from the query string, falling back to
// the first page of defaultPageSize items.
func PageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// BadRequest reports a body or query string that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	Error(c, apperror.InvalidArgument("malformed request: %v", err), false)
}

// UUIDParam reads a path parameter that must be a UUID. A malformed value is
// answered with ValidationFailed and ok is false.
func UUIDParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if _, err := uuid.Parse(v); err != nil {
		Error(c, apperror.ValidationFailed(apperror.FieldError{Field: name, Message: "must be a valid UUID"}), false)
		return "", false
	}
	return v, true
}
