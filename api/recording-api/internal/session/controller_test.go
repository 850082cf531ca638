package internal_session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_audio "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/audio"
	internal_entity "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/entity"
	internal_progress "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/progress"
	internal_prompt "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/prompt"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failing bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", fmt.Errorf("bucket unreachable")
	}
	s.objects[key] = append([]byte(nil), data...)
	return "mem://" + key, nil
}

type fakeLog struct {
	mu   sync.Mutex
	rows []*internal_entity.RecordingLog
}

func (l *fakeLog) Append(ctx context.Context, speakerID string, promptIdx int, promptText, location string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, &internal_entity.RecordingLog{
		SpeakerID:   speakerID,
		PromptIndex: promptIdx,
		PromptText:  promptText,
		Location:    location,
	})
	return nil
}

func (l *fakeLog) BySpeaker(ctx context.Context, speakerID string) ([]*internal_entity.RecordingLog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var rows []*internal_entity.RecordingLog
	for _, row := range l.rows {
		if row.SpeakerID == speakerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type fixture struct {
	controller Controller
	store      internal_progress.Store
	storage    *fakeStorage
	meta       *fakeLog
}

func newTestLogger(t *testing.T) commons.Logger {
	t.Helper()
	logger, err := commons.NewApplicationLogger(
		commons.Name("test-session"),
		commons.Path(t.TempDir()),
		commons.Level("debug"),
	)
	require.NoError(t, err)
	return logger
}

func newFixture(t *testing.T, sentences ...string) *fixture {
	t.Helper()
	logger := newTestLogger(t)
	prompts, err := internal_prompt.NewList(sentences)
	require.NoError(t, err)

	store := internal_progress.NewMemoryStore()
	storage := newFakeStorage()
	meta := &fakeLog{}
	controller := NewController(logger, prompts, internal_progress.NewTracker(logger, store), storage, meta)
	return &fixture{controller: controller, store: store, storage: storage, meta: meta}
}

// wavSeconds builds a LINEAR16 mono 16 kHz WAV source of the given length.
func wavSeconds(t *testing.T, seconds float64) internal_audio.Source {
	t.Helper()
	samples := make([]byte, int(seconds*16000)*2)
	source, err := internal_audio.NewWAVSource(internal_audio.EncodeWAV(samples, 16000, 1))
	require.NoError(t, err)
	return source
}

func TestOnSpeakerChangedBlankID(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	next, err := f.controller.OnSpeakerChanged(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, 0, next.Index)
	assert.Equal(t, "A", next.Text)
}

func TestOnSpeakerChangedNewVolunteer(t *testing.T) {
	f := newFixture(t, "A", "B", "C")

	next, err := f.controller.OnSpeakerChanged(context.Background(), "first-timer")
	require.NoError(t, err)
	assert.Equal(t, 0, next.Index)
	assert.False(t, next.AllComplete)
}

func TestOnSpeakerChangedResumesAtGap(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	require.NoError(t, f.store.Save(map[string]*internal_progress.VolunteerProgress{
		"jdoe": {SpeakerID: "jdoe", CompletedPrompts: []int{0, 2}, TotalDurationSeconds: 5.0},
	}))

	next, err := f.controller.OnSpeakerChanged(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 1, next.Index)
	assert.Equal(t, "B", next.Text)
}

func TestOnSubmitValidation(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	ctx := context.Background()

	_, err := f.controller.OnSubmit(ctx, "", 0, wavSeconds(t, 1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.OnSubmit(ctx, "jdoe", 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.OnSubmit(ctx, "jdoe", 3, wavSeconds(t, 1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.OnSubmit(ctx, "jdoe", -1, wavSeconds(t, 1))
	assert.ErrorIs(t, err, ErrValidation)

	// No state was touched by any of the rejected submissions.
	mapping, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, mapping)
	assert.Empty(t, f.storage.objects)
	assert.Empty(t, f.meta.rows)
}

func TestOnSubmitScenario(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	ctx := context.Background()

	// jdoe records prompt 0 (2.5s).
	result, err := f.controller.OnSubmit(ctx, "jdoe", 0, wavSeconds(t, 2.5))
	require.NoError(t, err)
	assert.Equal(t, "completed 1/3", result.CompletedSummary)
	assert.Equal(t, "B", result.NextPromptText)
	assert.Equal(t, 1, result.NextPromptIndex)
	assert.False(t, result.AllComplete)

	// Then prompt 1 (3.0s).
	result, err = f.controller.OnSubmit(ctx, "jdoe", 1, wavSeconds(t, 3.0))
	require.NoError(t, err)
	assert.Equal(t, "completed 2/3", result.CompletedSummary)
	assert.Equal(t, "C", result.NextPromptText)
	assert.Equal(t, 2, result.NextPromptIndex)

	// Re-records prompt 0: audio and metadata are written again, but the
	// counters and the sequencer's answer stay put.
	result, err = f.controller.OnSubmit(ctx, "jdoe", 0, wavSeconds(t, 2.5))
	require.NoError(t, err)
	assert.Equal(t, "completed 2/3", result.CompletedSummary)
	assert.Equal(t, "total duration 5.5s", result.DurationSummary)
	assert.Equal(t, "C", result.NextPromptText)
	assert.Equal(t, 2, result.NextPromptIndex)

	rows, err := f.meta.BySpeaker(ctx, "jdoe")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Len(t, f.storage.objects, 3)
}

func TestOnSubmitAllCompleteWrapsToFirstPrompt(t *testing.T) {
	f := newFixture(t, "A", "B")
	ctx := context.Background()

	_, err := f.controller.OnSubmit(ctx, "jdoe", 0, wavSeconds(t, 1))
	require.NoError(t, err)
	result, err := f.controller.OnSubmit(ctx, "jdoe", 1, wavSeconds(t, 1))
	require.NoError(t, err)

	assert.True(t, result.AllComplete)
	assert.Equal(t, 0, result.NextPromptIndex)
	assert.Equal(t, "A", result.NextPromptText)
	assert.Equal(t, "completed 2/2", result.CompletedSummary)
}

func TestOnSubmitStorageFailureLeavesProgressUntouched(t *testing.T) {
	f := newFixture(t, "A", "B")
	ctx := context.Background()

	_, err := f.controller.OnSubmit(ctx, "jdoe", 0, wavSeconds(t, 1))
	require.NoError(t, err)

	f.storage.failing = true
	_, err = f.controller.OnSubmit(ctx, "jdoe", 1, wavSeconds(t, 1))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))

	mapping, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, mapping["jdoe"].CompletedPrompts)

	rows, err := f.meta.BySpeaker(ctx, "jdoe")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOnSubmitStoresPlayableWAV(t *testing.T) {
	f := newFixture(t, "A")
	ctx := context.Background()

	result, err := f.controller.OnSubmit(ctx, "jdoe", 0, wavSeconds(t, 1.5))
	require.NoError(t, err)
	assert.Contains(t, result.Status, "Saved to ")
	assert.Contains(t, result.Location, "raw/jdoe/jdoe_000_")

	require.Len(t, f.storage.objects, 1)
	for _, data := range f.storage.objects {
		format, err := internal_audio.DecodeWAV(data)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, format.DurationSeconds(), 1e-9)
	}
}

func TestProgressSummary(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	ctx := context.Background()

	_, err := f.controller.Progress(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)

	summary, err := f.controller.Progress(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.Equal(t, 3, summary.TotalPrompts)
	assert.False(t, summary.AllComplete)
	assert.Equal(t, []int{}, summary.CompletedPrompts)

	_, err = f.controller.OnSubmit(ctx, "jdoe", 2, wavSeconds(t, 2))
	require.NoError(t, err)
	summary, err = f.controller.Progress(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompletedCount)
	assert.Equal(t, []int{2}, summary.CompletedPrompts)
	assert.Equal(t, 2.0, summary.DurationSeconds)
}
