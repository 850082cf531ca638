package recording_api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	internal_audio "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/audio"
	internal_session "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/session"
	"github.com/ogbidaniel/voice-cloning-paper/config"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

// RecordingApi exposes the portal over HTTP: prompt resume, submission and
// progress lookups for the browser recorder page.
type RecordingApi interface {
	NextPrompt(c *gin.Context)
	Submit(c *gin.Context)
	Progress(c *gin.Context)
}

type recordingApi struct {
	cfg        *config.AppConfig
	logger     commons.Logger
	controller internal_session.Controller
}

func NewRecordingApi(cfg *config.AppConfig, logger commons.Logger, controller internal_session.Controller) RecordingApi {
	return &recordingApi{
		cfg:        cfg,
		logger:     logger,
		controller: controller,
	}
}

// NextPrompt handles the speaker-id-changed trigger: GET /api/v1/prompts/next?speaker_id=...
func (api *recordingApi) NextPrompt(c *gin.Context) {
	next, err := api.controller.OnSpeakerChanged(c.Request.Context(), c.Query("speaker_id"))
	if err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"promptText":  next.Text,
		"promptIndex": next.Index,
		"allComplete": next.AllComplete,
	})
}

// Submit handles the recording-submitted trigger: POST /api/v1/recordings with
// a multipart form carrying speaker_id, prompt_index and the audio file.
func (api *recordingApi) Submit(c *gin.Context) {
	speakerID := c.PostForm("speaker_id")

	promptIdx, err := strconv.Atoi(c.PostForm("prompt_index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"warning": "prompt_index must be an integer"})
		return
	}

	var source internal_audio.Source
	if fileHeader, err := c.FormFile("audio"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			api.fail(c, err)
			return
		}
		defer file.Close()
		payload, err := io.ReadAll(file)
		if err != nil {
			api.fail(c, err)
			return
		}
		source, err = internal_audio.NewWAVSource(payload)
		if err != nil {
			api.fail(c, err)
			return
		}
	}

	result, err := api.controller.OnSubmit(c.Request.Context(), speakerID, promptIdx, source)
	if err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Progress handles GET /api/v1/progress/:speaker_id.
func (api *recordingApi) Progress(c *gin.Context) {
	summary, err := api.controller.Progress(c.Request.Context(), c.Param("speaker_id"))
	if err != nil {
		api.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// fail maps the error taxonomy onto responses. Validation and decode problems
// are volunteer-facing warnings; anything else is a storage-layer failure that
// aborts the submission without touching prior state.
func (api *recordingApi) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, internal_session.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"warning": err.Error()})
	case errors.Is(err, internal_audio.ErrUnrecognized):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"warning": err.Error()})
	default:
		api.logger.Errorf("submission failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable, please retry"})
	}
}
