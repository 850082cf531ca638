package recording_routers

import (
	"github.com/gin-gonic/gin"

	recordingApi "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/api"
	internal_session "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/session"
	"github.com/ogbidaniel/voice-cloning-paper/api/recording-api/web"
	"github.com/ogbidaniel/voice-cloning-paper/config"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

func RecordingApiRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, controller internal_session.Controller) {
	logger.Info("RecordingApiRoutes added to engine.")
	api := recordingApi.NewRecordingApi(cfg, logger, controller)

	apiv1 := engine.Group("/api/v1")
	{
		apiv1.GET("/prompts/next", api.NextPrompt)
		apiv1.POST("/recordings", api.Submit)
		apiv1.GET("/progress/:speaker_id", api.Progress)
	}

	engine.GET("/", web.Index)
}
