package recording_routers

import (
	"github.com/gin-gonic/gin"

	healthCheckApi "github.com/ogbidaniel/voice-cloning-paper/api/health-check-api"
	"github.com/ogbidaniel/voice-cloning-paper/config"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/connectors"
)

func HealthCheckRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, sqlite connectors.SqliteConnector) {
	logger.Info("HealthCheckRoutes added to engine.")
	apiv1 := engine.Group("")
	hcApi := healthCheckApi.New(cfg, logger, sqlite)
	{
		apiv1.GET("/readiness/", hcApi.Readiness)
		apiv1.GET("/healthz/", hcApi.Healthz)
	}
}
