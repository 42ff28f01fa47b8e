package receiver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/imgup/tool"
)

// drainFactor bounds how much of a rejected body is read: bodies up to
// drainFactor times the limit are consumed before the 413 is written, so the
// client gets the status instead of a connection reset.
const drainFactor = 4

// LimitBodySize rejects requests whose declared Content-Length is above limit
// bytes with 413.
func LimitBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength < 0 {
			c.AbortWithStatusJSON(http.StatusLengthRequired, tool.FastReturnError("Content-Length required"))
			return
		}
		if c.Request.ContentLength > limit {
			tool.DefaultLogger.Warnf("Rejecting upload of %d bytes (limit %d)", c.Request.ContentLength, limit)
			if c.Request.ContentLength <= drainFactor*limit {
				_, _ = io.Copy(io.Discard, c.Request.Body)
			}
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, tool.FastReturnError("payload too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
