// Package rest provides the shared result envelope all handlers produce:
// a status code plus a body, written once at the transport boundary.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Result struct {
	Status int
	Body   interface{}
}

func OK(body interface{}) Result {
	return Result{Status: http.StatusOK, Body: body}
}

func Created(body interface{}) Result {
	return Result{Status: http.StatusCreated, Body: body}
}

func NoContent() Result {
	return Result{Status: http.StatusNoContent}
}

// Fail builds an error envelope of the shape {"error": message}.
func Fail(status int, message string) Result {
	return Result{Status: status, Body: gin.H{"error": message}}
}

func (r Result) Write(c *gin.Context) {
	if r.Body == nil {
		c.Status(r.Status)
		return
	}
	c.JSON(r.Status, r.Body)
}
