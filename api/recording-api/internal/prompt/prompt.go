package internal_prompt

import (
	"fmt"
	"os"
	"strings"
)

// List is the ordered, immutable sentence list volunteers read from.
// Loaded once at startup and shared read-only afterwards.
type List struct {
	prompts []string
}

// Load reads one sentence per line, dropping empty and whitespace-only lines.
func Load(path string) (*List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read prompt file %s: %w", path, err)
	}
	list, err := Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("prompt file %s: %w", path, err)
	}
	return list, nil
}

// Parse builds a List from raw text, one sentence per non-empty line.
func Parse(text string) (*List, error) {
	var prompts []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			prompts = append(prompts, trimmed)
		}
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts found")
	}
	return &List{prompts: prompts}, nil
}

// NewList wraps an already-assembled sentence slice, for tests and callers
// that source prompts elsewhere.
func NewList(prompts []string) (*List, error) {
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts found")
	}
	copied := make([]string, len(prompts))
	copy(copied, prompts)
	return &List{prompts: copied}, nil
}

func (l *List) Len() int {
	return len(l.prompts)
}

// Get returns the sentence at idx.
func (l *List) Get(idx int) (string, error) {
	if idx < 0 || idx >= len(l.prompts) {
		return "", fmt.Errorf("prompt index %d out of range [0,%d)", idx, len(l.prompts))
	}
	return l.prompts[idx], nil
}
