package internal_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	internal_audio "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/audio"
	internal_metadata "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/metadata"
	internal_progress "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/progress"
	internal_prompt "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/prompt"
	internal_sequence "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/sequence"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
	storage_audio "github.com/ogbidaniel/voice-cloning-paper/pkg/storages/audio-storage"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/utils"
)

// ErrValidation marks volunteer-facing input problems: blank speaker id,
// missing audio, out-of-range prompt index. The session stays on the same
// prompt and no state is mutated.
var ErrValidation = errors.New("validation failed")

// SubmitResult is everything the portal page shows after a submission.
type SubmitResult struct {
	Status           string `json:"status"`
	NextPromptText   string `json:"nextPromptText"`
	NextPromptIndex  int    `json:"nextPromptIndex"`
	CompletedSummary string `json:"completedSummary"`
	DurationSummary  string `json:"durationSummary"`
	AllComplete      bool   `json:"allComplete"`
	Location         string `json:"location"`
}

// Summary is the read-only progress view for a volunteer.
type Summary struct {
	SpeakerID        string  `json:"speakerId"`
	CompletedPrompts []int   `json:"completedPrompts"`
	CompletedCount   int     `json:"completedCount"`
	TotalPrompts     int     `json:"totalPrompts"`
	DurationSeconds  float64 `json:"durationSeconds"`
	DurationSummary  string  `json:"durationSummary"`
	AllComplete      bool    `json:"allComplete"`
}

// Controller orchestrates the portal's two triggers: the volunteer id
// changing (resume) and a recording being submitted.
type Controller interface {
	// OnSpeakerChanged resolves the prompt to show. A blank id gets the first
	// prompt without a progress lookup; an unknown id is a new volunteer.
	OnSpeakerChanged(ctx context.Context, speakerID string) (internal_sequence.Next, error)

	// OnSubmit validates, persists audio and metadata, merges progress, and
	// returns what to display next.
	OnSubmit(ctx context.Context, speakerID string, promptIdx int, source internal_audio.Source) (*SubmitResult, error)

	// Progress summarizes a volunteer's completion state.
	Progress(ctx context.Context, speakerID string) (*Summary, error)
}

type controller struct {
	logger  commons.Logger
	prompts *internal_prompt.List
	tracker internal_progress.Tracker
	storage storage_audio.Storage
	meta    internal_metadata.Log
	clock   func() time.Time
}

// NewController wires the session controller. Collaborators are injected so
// tests can substitute in-memory stores.
func NewController(
	logger commons.Logger,
	prompts *internal_prompt.List,
	tracker internal_progress.Tracker,
	storage storage_audio.Storage,
	meta internal_metadata.Log,
) Controller {
	return &controller{
		logger:  logger,
		prompts: prompts,
		tracker: tracker,
		storage: storage,
		meta:    meta,
		clock:   time.Now,
	}
}

func (c *controller) OnSpeakerChanged(ctx context.Context, speakerID string) (internal_sequence.Next, error) {
	if utils.IsEmpty(speakerID) {
		text, _ := c.prompts.Get(0)
		return internal_sequence.Next{Text: text, Index: 0}, nil
	}

	record, err := c.tracker.Get(ctx, speakerID)
	if err != nil {
		return internal_sequence.Next{}, err
	}
	next := internal_sequence.NextPrompt(c.prompts, record.CompletedSet())
	c.logger.Debugf("speaker %s resumes at prompt %d (%d/%d done)",
		speakerID, next.Index, len(record.CompletedPrompts), c.prompts.Len())
	return next, nil
}

func (c *controller) OnSubmit(ctx context.Context, speakerID string, promptIdx int, source internal_audio.Source) (*SubmitResult, error) {
	if utils.IsEmpty(speakerID) {
		return nil, fmt.Errorf("%w: please enter a speaker id first", ErrValidation)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: please record before submitting", ErrValidation)
	}
	if promptIdx < 0 || promptIdx >= c.prompts.Len() {
		return nil, fmt.Errorf("%w: prompt index %d out of range [0,%d)", ErrValidation, promptIdx, c.prompts.Len())
	}
	promptText, err := c.prompts.Get(promptIdx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	wavBytes, err := source.WAV()
	if err != nil {
		return nil, err
	}
	durationSeconds, err := source.DurationSeconds()
	if err != nil {
		return nil, err
	}

	// Audio first, then metadata, then progress: a failure part-way leaves at
	// worst an orphan WAV, never progress pointing at missing audio.
	key := storage_audio.Key(speakerID, promptIdx, c.clock())
	location, err := c.storage.Put(ctx, key, wavBytes)
	if err != nil {
		return nil, err
	}
	if err := c.meta.Append(ctx, speakerID, promptIdx, promptText, location); err != nil {
		return nil, err
	}

	record, err := c.tracker.RecordCompletion(ctx, speakerID, promptIdx, durationSeconds)
	if err != nil {
		return nil, err
	}

	next := internal_sequence.NextPrompt(c.prompts, record.CompletedSet())
	return &SubmitResult{
		Status:           fmt.Sprintf("Saved to %s", location),
		NextPromptText:   next.Text,
		NextPromptIndex:  next.Index,
		CompletedSummary: fmt.Sprintf("completed %d/%d", len(record.CompletedPrompts), c.prompts.Len()),
		DurationSummary:  fmt.Sprintf("total duration %s", utils.FormatSeconds(record.TotalDurationSeconds)),
		AllComplete:      next.AllComplete,
		Location:         location,
	}, nil
}

func (c *controller) Progress(ctx context.Context, speakerID string) (*Summary, error) {
	if utils.IsEmpty(speakerID) {
		return nil, fmt.Errorf("%w: please enter a speaker id first", ErrValidation)
	}
	record, err := c.tracker.Get(ctx, speakerID)
	if err != nil {
		return nil, err
	}
	completed := record.CompletedPrompts
	if completed == nil {
		completed = []int{}
	}
	return &Summary{
		SpeakerID:        speakerID,
		CompletedPrompts: completed,
		CompletedCount:   len(completed),
		TotalPrompts:     c.prompts.Len(),
		DurationSeconds:  record.TotalDurationSeconds,
		DurationSummary:  fmt.Sprintf("total duration %s", utils.FormatSeconds(record.TotalDurationSeconds)),
		AllComplete:      len(completed) >= c.prompts.Len(),
	}, nil
}
