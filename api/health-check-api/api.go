package healthcheck_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogbidaniel/voice-cloning-paper/config"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/connectors"
)

type HealthCheckApi interface {
	Readiness(c *gin.Context)
	Healthz(c *gin.Context)
}

type healthCheckApi struct {
	cfg    *config.AppConfig
	logger commons.Logger
	sqlite connectors.SqliteConnector
}

func New(cfg *config.AppConfig, logger commons.Logger, sqlite connectors.SqliteConnector) HealthCheckApi {
	return &healthCheckApi{cfg: cfg, logger: logger, sqlite: sqlite}
}

// Healthz reports process liveness.
func (api *healthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": api.cfg.Name, "version": api.cfg.Version})
}

// Readiness additionally verifies the metadata database answers.
func (api *healthCheckApi) Readiness(c *gin.Context) {
	if err := api.sqlite.DB(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
		api.logger.Errorf("readiness check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
