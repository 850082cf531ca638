package internal_progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

// Store persists the full speaker→progress mapping. Load and Save always move
// the whole document; there is no partial access.
//
// A missing or unparsable document loads as empty — losing the progress file
// must never lock volunteers out of the portal. Unrelated I/O failures
// (permissions, unreadable directory) still surface.
type Store interface {
	Load() (map[string]*VolunteerProgress, error)
	Save(mapping map[string]*VolunteerProgress) error
}

type fileStore struct {
	logger commons.Logger
	path   string
	mu     sync.Mutex
}

// NewFileStore keeps the progress document as human-readable JSON at path.
func NewFileStore(logger commons.Logger, path string) Store {
	return &fileStore{logger: logger, path: path}
}

func (s *fileStore) Load() (map[string]*VolunteerProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]*VolunteerProgress{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read progress document %s: %w", s.path, err)
	}

	mapping := map[string]*VolunteerProgress{}
	if err := json.Unmarshal(raw, &mapping); err != nil {
		s.logger.Warnf("progress document %s is unparsable, starting empty: %v", s.path, err)
		return map[string]*VolunteerProgress{}, nil
	}
	for speakerID, record := range mapping {
		if record == nil {
			mapping[speakerID] = &VolunteerProgress{SpeakerID: speakerID}
			continue
		}
		record.SpeakerID = speakerID
		record.normalize()
	}
	return mapping, nil
}

func (s *fileStore) Save(mapping map[string]*VolunteerProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("unable to create progress directory: %w", err)
	}

	raw, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode progress document: %w", err)
	}

	// Write-then-rename so readers never observe a half-written document.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("unable to create progress temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write progress document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to close progress temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("unable to replace progress document %s: %w", s.path, err)
	}
	return nil
}

type memoryStore struct {
	mu      sync.Mutex
	mapping map[string]*VolunteerProgress
}

// NewMemoryStore is an in-process Store for tests and ephemeral deployments.
func NewMemoryStore() Store {
	return &memoryStore{mapping: map[string]*VolunteerProgress{}}
}

func (s *memoryStore) Load() (map[string]*VolunteerProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMapping(s.mapping), nil
}

func (s *memoryStore) Save(mapping map[string]*VolunteerProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping = cloneMapping(mapping)
	return nil
}

func cloneMapping(in map[string]*VolunteerProgress) map[string]*VolunteerProgress {
	out := make(map[string]*VolunteerProgress, len(in))
	for speakerID, record := range in {
		copied := *record
		copied.CompletedPrompts = append([]int(nil), record.CompletedPrompts...)
		out[speakerID] = &copied
	}
	return out
}
