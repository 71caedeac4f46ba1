package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body of every non-2xx answer:
// {"error":{"message":...},"detail":...}
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError answers with msg and records err on the context so the
// error middleware can log the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := newResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with msg when there is no underlying error to keep.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, newResponse(status, msg, nil))
}
