package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flowershop/internal/server/http/dto"
)

// DecompressRequest transparently inflates gzip encoded request bodies.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		reader, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Error. Malformed request body."))
			return
		}
		defer body.Close()

		c.Request.Body = reader
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
		_ = reader.Close()
	}
}
