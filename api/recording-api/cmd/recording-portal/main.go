package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	internal_metadata "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/metadata"
	internal_progress "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/progress"
	internal_prompt "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/prompt"
	internal_session "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/session"
	recording_routers "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/router"
	"github.com/ogbidaniel/voice-cloning-paper/config"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/connectors"
	storage_audio "github.com/ogbidaniel/voice-cloning-paper/pkg/storages/audio-storage"
)

func main() {
	vConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalf("unable to initialize config: %v", err)
	}
	cfg, err := config.GetApplicationConfig(vConfig)
	if err != nil {
		log.Fatalf("unable to read application config: %v", err)
	}

	logger, err := commons.NewApplicationLogger(
		commons.Name(cfg.Name),
		commons.Path(cfg.LogPath),
		commons.Level(cfg.LogLevel),
	)
	if err != nil {
		log.Fatalf("unable to create logger: %v", err)
	}
	defer logger.Sync()

	prompts, err := internal_prompt.Load(cfg.PromptPath)
	if err != nil {
		logger.Fatalf("unable to load prompts: %v", err)
	}
	logger.Infof("loaded %d prompts from %s", prompts.Len(), cfg.PromptPath)

	var storage storage_audio.Storage
	if cfg.Store == config.StoreS3 {
		storage, err = storage_audio.NewS3Storage(logger, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			logger.Fatalf("unable to create s3 storage: %v", err)
		}
		logger.Infof("recordings go to s3://%s", cfg.S3Bucket)
	} else {
		storage = storage_audio.NewLocalStorage(logger, cfg.DataRoot)
		logger.Infof("recordings go to %s", filepath.Join(cfg.DataRoot, "raw"))
	}

	sqlite, err := connectors.NewSqliteConnector(logger, filepath.Join(cfg.DataRoot, "meta.db"))
	if err != nil {
		logger.Fatalf("unable to open metadata database: %v", err)
	}
	meta, err := internal_metadata.NewLog(logger, sqlite)
	if err != nil {
		logger.Fatalf("unable to create metadata log: %v", err)
	}

	store := internal_progress.NewFileStore(logger, filepath.Join(cfg.DataRoot, "progress.json"))
	tracker := internal_progress.NewTracker(logger, store)
	controller := internal_session.NewController(logger, prompts, tracker, storage, meta)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	recording_routers.HealthCheckRoutes(cfg, engine, logger, sqlite)
	recording_routers.RecordingApiRoutes(cfg, engine, logger, controller)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Infof("%s %s listening on %s", cfg.Name, cfg.Version, addr)
	if err := engine.Run(addr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
