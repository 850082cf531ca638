package internal_sequence

import (
	internal_prompt "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/prompt"
)

// Next is the prompt a volunteer should see, plus whether every prompt in the
// list already has a recording (re-recording keeps the portal usable after
// that point, so Index wraps back to 0 rather than terminating).
type Next struct {
	Text        string
	Index       int
	AllComplete bool
}

// NextPrompt scans indices ascending and returns the first one not yet
// completed. When all indices are completed it wraps to index 0 with
// AllComplete set, a pure function of its inputs.
func NextPrompt(prompts *internal_prompt.List, completed map[int]bool) Next {
	for idx := 0; idx < prompts.Len(); idx++ {
		if !completed[idx] {
			text, _ := prompts.Get(idx)
			return Next{Text: text, Index: idx}
		}
	}
	text, _ := prompts.Get(0)
	return Next{Text: text, Index: 0, AllComplete: true}
}
