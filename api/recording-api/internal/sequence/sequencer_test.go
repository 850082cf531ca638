package internal_sequence

import (
	"testing"

	internal_prompt "github.com/ogbidaniel/voice-cloning-paper/api/recording-api/internal/prompt"
)

func testPrompts(t *testing.T, sentences ...string) *internal_prompt.List {
	t.Helper()
	list, err := internal_prompt.NewList(sentences)
	if err != nil {
		t.Fatalf("unable to build prompt list: %v", err)
	}
	return list
}

func completedUpTo(k int) map[int]bool {
	set := map[int]bool{}
	for i := 0; i < k; i++ {
		set[i] = true
	}
	return set
}

func TestNextPromptAscendingPrefix(t *testing.T) {
	prompts := testPrompts(t, "A", "B", "C", "D", "E")

	for k := 0; k < prompts.Len(); k++ {
		next := NextPrompt(prompts, completedUpTo(k))
		if next.Index != k {
			t.Errorf("completed {0..%d}: expected index %d, got %d", k-1, k, next.Index)
		}
		if next.AllComplete {
			t.Errorf("completed {0..%d}: AllComplete should be false", k-1)
		}
	}
}

func TestNextPromptWrapsWhenAllComplete(t *testing.T) {
	prompts := testPrompts(t, "A", "B", "C")

	next := NextPrompt(prompts, completedUpTo(3))
	if next.Index != 0 {
		t.Errorf("expected wrap to index 0, got %d", next.Index)
	}
	if next.Text != "A" {
		t.Errorf("expected prompt A, got %q", next.Text)
	}
	if !next.AllComplete {
		t.Error("expected AllComplete")
	}
}

func TestNextPromptFillsGapsFirst(t *testing.T) {
	prompts := testPrompts(t, "A", "B", "C")

	next := NextPrompt(prompts, map[int]bool{0: true, 2: true})
	if next.Index != 1 {
		t.Errorf("expected index 1, got %d", next.Index)
	}
	if next.Text != "B" {
		t.Errorf("expected prompt B, got %q", next.Text)
	}
}

func TestNextPromptEmptyCompleted(t *testing.T) {
	prompts := testPrompts(t, "A", "B")

	next := NextPrompt(prompts, nil)
	if next.Index != 0 || next.Text != "A" || next.AllComplete {
		t.Errorf("new volunteer should get index 0, got %+v", next)
	}
}

func TestNextPromptIgnoresStrayIndices(t *testing.T) {
	prompts := testPrompts(t, "A", "B")

	// Indices beyond the list (from an older, longer prompt file) must not
	// affect sequencing within the current list.
	next := NextPrompt(prompts, map[int]bool{0: true, 1: true, 7: true})
	if next.Index != 0 || !next.AllComplete {
		t.Errorf("expected wrap with AllComplete, got %+v", next)
	}
}
