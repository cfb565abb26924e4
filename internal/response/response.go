package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the envelope every endpoint returns: exactly one of Data or
// Error is populated, Pagination rides along on list endpoints, and Metadata
// carries the request ID for log correlation.
type Response struct {
	Data       interface{} `json:"data"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Metadata   Metadata    `json:"metadata"`
}

// ErrorBody pairs a stable machine code with a human-readable message.
// Fields holds per-field validation messages when binding failed.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination describes one page of a list result.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Metadata is attached to every response.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success writes a data envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	write(c, statusCode, data, nil, nil)
}

// SuccessWithPagination writes a data envelope with page information.
func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	write(c, statusCode, data, nil, pagination)
}

// Fail writes an error envelope for the given code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	write(c, statusCode, nil, &ErrorBody{Code: code, Message: GetMessage(code)}, nil)
}

// FailWithFields writes an error envelope carrying per-field validation
// messages.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	write(c, statusCode, nil, &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields}, nil)
}

// AbortFail stops the middleware chain and writes an error envelope. For use
// inside middleware; handlers use Fail.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.Abort()
	write(c, statusCode, nil, &ErrorBody{Code: code, Message: GetMessage(code)}, nil)
}

func write(c *gin.Context, statusCode int, data interface{}, errBody *ErrorBody, pagination *Pagination) {
	c.JSON(statusCode, Response{
		Data:       data,
		Error:      errBody,
		Pagination: pagination,
		Metadata:   buildMetadata(c),
	})
}

func buildMetadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		// Middleware not applied (direct handler tests); mint one so the
		// envelope shape never varies.
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
