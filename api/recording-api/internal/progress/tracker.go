package internal_progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

// Tracker merges newly completed prompts into the persisted progress document
// and answers resume lookups.
type Tracker interface {
	// RecordCompletion marks promptIdx completed for speakerID, accumulating
	// durationSeconds only if the index was not already completed, and
	// persists the full mapping. Calling it again with the same index is a
	// no-op on both the set and the accumulator.
	RecordCompletion(ctx context.Context, speakerID string, promptIdx int, durationSeconds float64) (*VolunteerProgress, error)

	// Get returns speakerID's progress, or an empty record for a volunteer
	// that has never submitted.
	Get(ctx context.Context, speakerID string) (*VolunteerProgress, error)
}

type tracker struct {
	logger commons.Logger
	store  Store

	// Merges are read-modify-write over the whole document, so a per-speaker
	// lock is not enough: speaker A's save would clobber speaker B's
	// concurrent merge. One mutex covers the whole merge path.
	mu sync.Mutex
}

// NewTracker builds a Tracker on top of the given store.
func NewTracker(logger commons.Logger, store Store) Tracker {
	return &tracker{
		logger: logger,
		store:  store,
	}
}

func (t *tracker) RecordCompletion(ctx context.Context, speakerID string, promptIdx int, durationSeconds float64) (*VolunteerProgress, error) {
	if promptIdx < 0 {
		return nil, fmt.Errorf("invalid prompt index %d", promptIdx)
	}
	if durationSeconds < 0 {
		return nil, fmt.Errorf("invalid duration %fs", durationSeconds)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	mapping, err := t.store.Load()
	if err != nil {
		return nil, err
	}

	record, ok := mapping[speakerID]
	if !ok {
		record = &VolunteerProgress{SpeakerID: speakerID}
		mapping[speakerID] = record
	}

	if record.Complete(promptIdx, durationSeconds) {
		t.logger.Infof("progress: speaker=%s completed prompt %d (%.2fs), total %d prompts / %.2fs",
			speakerID, promptIdx, durationSeconds, len(record.CompletedPrompts), record.TotalDurationSeconds)
	} else {
		t.logger.Debugf("progress: speaker=%s re-recorded prompt %d, counters unchanged", speakerID, promptIdx)
	}

	if err := t.store.Save(mapping); err != nil {
		return nil, err
	}

	result := *record
	result.CompletedPrompts = append([]int(nil), record.CompletedPrompts...)
	return &result, nil
}

func (t *tracker) Get(ctx context.Context, speakerID string) (*VolunteerProgress, error) {
	mapping, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	if record, ok := mapping[speakerID]; ok {
		result := *record
		result.CompletedPrompts = append([]int(nil), record.CompletedPrompts...)
		return &result, nil
	}
	return &VolunteerProgress{SpeakerID: speakerID}, nil
}
