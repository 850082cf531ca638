package storage_audio

import (
	"context"
	"fmt"
	"time"
)

// Storage persists captured recordings. Put returns the location string the
// metadata log should reference: a filesystem path for the local store, an
// s3:// URI for the remote one.
type Storage interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Key builds the object key for a recording:
// raw/<speaker>/<speaker>_<idx 0-padded to 3>_<YYYYMMDD-HHMMSS>.wav
func Key(speakerID string, promptIdx int, now time.Time) string {
	return fmt.Sprintf("raw/%s/%s_%03d_%s.wav",
		speakerID, speakerID, promptIdx, now.Format("20060102-150405"))
}
