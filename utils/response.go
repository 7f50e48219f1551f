package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes data with the given status code.
func JSON(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, data)
}

// Success returns a 200 response.
func Success(ctx *gin.Context, data interface{}) {
	JSON(ctx, 200, data)
}

// Error returns a flat {"error": message} response.
func Error(ctx *gin.Context, status int, message string) {
	JSON(ctx, status, ErrorResponse{Error: message})
}
