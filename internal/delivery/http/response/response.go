package response

import (
	"strconv"

	"go-matching-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// TotalCountHeader carries the unpaged record count of list responses.
const TotalCountHeader = "X-Total-Count"

// Response is the envelope of every API reply.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Page writes a paged match listing and mirrors its total in TotalCountHeader.
func Page(c *gin.Context, code int, message string, page *domain.Page) {
	if page != nil {
		c.Header(TotalCountHeader, strconv.FormatInt(page.Total, 10))
	}
	Success(c, code, message, page)
}

func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if id := c.GetString(string(domain.KeyRequestID)); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}
