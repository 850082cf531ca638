package internal_metadata

import (
	"context"
	"fmt"

	internal_entity "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/entity"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
	"github.com/ogbidaniel/voice-cloning-paper/pkg/connectors"
)

// Log is the append-only record of accepted submissions.
type Log interface {
	// Append stores one row; rows are never updated or deleted.
	Append(ctx context.Context, speakerID string, promptIdx int, promptText, location string) error

	// BySpeaker returns a speaker's rows oldest first, re-recordings included.
	BySpeaker(ctx context.Context, speakerID string) ([]*internal_entity.RecordingLog, error)
}

type sqliteLog struct {
	logger commons.Logger
	sqlite connectors.SqliteConnector
}

// NewLog builds the sqlite-backed metadata log, migrating its table.
func NewLog(logger commons.Logger, sqlite connectors.SqliteConnector) (Log, error) {
	if err := sqlite.Migrate(&internal_entity.RecordingLog{}); err != nil {
		return nil, fmt.Errorf("unable to migrate recording log: %w", err)
	}
	return &sqliteLog{logger: logger, sqlite: sqlite}, nil
}

func (l *sqliteLog) Append(ctx context.Context, speakerID string, promptIdx int, promptText, location string) error {
	row := &internal_entity.RecordingLog{
		SpeakerID:   speakerID,
		PromptIndex: promptIdx,
		PromptText:  promptText,
		Location:    location,
	}
	db := l.sqlite.DB(ctx)
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("failed to append recording log for %s/%d: %w", speakerID, promptIdx, err)
	}
	l.logger.Debugf("recording log appended: speaker=%s prompt=%d location=%s", speakerID, promptIdx, location)
	return nil
}

func (l *sqliteLog) BySpeaker(ctx context.Context, speakerID string) ([]*internal_entity.RecordingLog, error) {
	db := l.sqlite.DB(ctx)
	var rows []*internal_entity.RecordingLog
	if err := db.Where("speaker_id = ?", speakerID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recording log for %s: %w", speakerID, err)
	}
	return rows, nil
}
