package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/utils"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	idVal, exists := c.Get(utils.ContextOperatorID)
	if !exists {
		return nil
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetOperatorName extracts the operator name from the Gin context
func GetOperatorName(c *gin.Context) string {
	return c.GetString(utils.ContextOperatorName)
}

// GetOperatorRoles extracts the operator roles from the Gin context
func GetOperatorRoles(c *gin.Context) []string {
	return c.GetStringSlice(utils.ContextOperatorRoles)
}

// parseIDParam reads a uuid path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}
