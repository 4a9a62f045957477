package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EnvStatus reports which credentials are present. It carries booleans only,
// never the values.
type EnvStatus struct {
	HasDatabaseHost     bool `json:"has_database_host"`
	HasDatabasePassword bool `json:"has_database_password"`
	HasRedis            bool `json:"has_redis"`
}

// EnvHandler serves the deployment environment probe.
type EnvHandler struct {
	status EnvStatus
}

// NewEnvHandler creates an EnvHandler.
func NewEnvHandler(status EnvStatus) *EnvHandler {
	return &EnvHandler{status: status}
}

// HandleEnvCheck returns the credential presence flags.
func (h *EnvHandler) HandleEnvCheck(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.status)
}
