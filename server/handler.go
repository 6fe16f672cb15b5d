package server

import "github.com/gin-gonic/gin"

func decode(c *gin.Context, v interface{}) error {
	return c.ShouldBindJSON(v)
}
