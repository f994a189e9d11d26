package handlers

import "github.com/gin-gonic/gin"

// 统一的错误响应
func errorResponse(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}
