package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// parseIDParam parses the :id path parameter as a UUID, writing a 400
// response on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction id")
		return uuid.Nil, false
	}
	return id, true
}
