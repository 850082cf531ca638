package storage_audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

type localStorage struct {
	logger commons.Logger
	root   string
}

// NewLocalStorage writes recordings under <root>/<key>.
func NewLocalStorage(logger commons.Logger, root string) Storage {
	return &localStorage{logger: logger, root: root}
}

func (s *localStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("unable to create recording directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("unable to write recording %s: %w", path, err)
	}
	s.logger.Debugf("recording written: %s (%d bytes)", path, len(data))
	return path, nil
}
