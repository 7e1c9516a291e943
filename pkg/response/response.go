package response

import "github.com/gin-gonic/gin"

// Envelope is the shared response shape of every entity endpoint.
type Envelope struct {
	Error   int         `json:"error"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Total   *int        `json:"total,omitempty"`
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Error: 0, Success: true, Data: data})
}

func OKWithTotal(c *gin.Context, status int, data interface{}, total int) {
	c.JSON(status, Envelope{Error: 0, Success: true, Data: data, Total: &total})
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Error: 0, Success: true, Message: message})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Error: 1, Success: false, Message: message})
}

func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Error: 1, Success: false, Message: message})
}
