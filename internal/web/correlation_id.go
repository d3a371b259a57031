package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationHeader = "x-correlation-id"

// CorrelationId takes the correlation id from the request header or issues one, and echoes it back
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(correlationHeader)
	if correlationId == "" {
		correlationId = uuid.New().String()
	}

	c.Set(correlationIdKey, correlationId)
	c.Header(correlationHeader, correlationId)
}
