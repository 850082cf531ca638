package internal_progress

import "sort"

// VolunteerProgress is one volunteer's completion state: which prompt indices
// have at least one accepted recording, and the summed duration of the first
// accepted take per index.
type VolunteerProgress struct {
	SpeakerID            string  `json:"speaker_id"`
	CompletedPrompts     []int   `json:"completed_prompts"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
}

// Has reports whether promptIdx already counts as completed.
func (p *VolunteerProgress) Has(promptIdx int) bool {
	for _, idx := range p.CompletedPrompts {
		if idx == promptIdx {
			return true
		}
	}
	return false
}

// Complete records promptIdx if it is new, accumulating duration exactly once
// per index. Re-recording an already-completed prompt leaves both the set and
// the accumulator untouched. Returns true when the index was newly added.
func (p *VolunteerProgress) Complete(promptIdx int, durationSeconds float64) bool {
	if p.Has(promptIdx) {
		return false
	}
	p.CompletedPrompts = append(p.CompletedPrompts, promptIdx)
	p.TotalDurationSeconds += durationSeconds
	p.normalize()
	return true
}

// CompletedSet returns the completed indices as a set.
func (p *VolunteerProgress) CompletedSet() map[int]bool {
	set := make(map[int]bool, len(p.CompletedPrompts))
	for _, idx := range p.CompletedPrompts {
		set[idx] = true
	}
	return set
}

// normalize deduplicates and sorts the completed list ascending so the
// persisted document is deterministic.
func (p *VolunteerProgress) normalize() {
	set := p.CompletedSet()
	normalized := make([]int, 0, len(set))
	for idx := range set {
		normalized = append(normalized, idx)
	}
	sort.Ints(normalized)
	p.CompletedPrompts = normalized
}
