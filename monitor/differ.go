package monitor

import "strings"

// Normalize collapses whitespace in raw OCR output so that incidental
// jitter (stray newlines, double spaces) does not register as a change.
// Leading/trailing whitespace is trimmed and internal runs of whitespace
// become single spaces. Whitespace-only input normalizes to "".
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Classify compares the previous and current normalized texts and returns
// the transition event, if any. Empty string means "no text present".
//
//	prev empty,     cur empty     -> none
//	prev empty,     cur non-empty -> NewText
//	prev non-empty, cur equal     -> none
//	prev non-empty, cur different -> TextChanged
//	prev non-empty, cur empty     -> TextCleared
//
// Comparison is exact string equality; jitter tolerance comes entirely
// from Normalize, not from fuzzy matching.
func Classify(prev, cur string) (Event, bool) {
	switch {
	case prev == cur:
		return nil, false
	case prev == "":
		return NewText{Text: cur}, true
	case cur == "":
		return TextCleared{Text: prev}, true
	default:
		added, removed := diffWords(prev, cur)
		return TextChanged{Old: prev, New: cur, Added: added, Removed: removed}, true
	}
}

// diffWords reports which words appear only in the new text and which only
// in the old one. Order follows first appearance; duplicates are reported once.
func diffWords(oldText, newText string) (added, removed []string) {
	oldWords := strings.Fields(oldText)
	newWords := strings.Fields(newText)

	oldSet := make(map[string]bool, len(oldWords))
	for _, w := range oldWords {
		oldSet[w] = true
	}
	newSet := make(map[string]bool, len(newWords))
	for _, w := range newWords {
		newSet[w] = true
	}

	seen := make(map[string]bool)
	for _, w := range newWords {
		if !oldSet[w] && !seen[w] {
			added = append(added, w)
			seen[w] = true
		}
	}
	seen = make(map[string]bool)
	for _, w := range oldWords {
		if !newSet[w] && !seen[w] {
			removed = append(removed, w)
			seen[w] = true
		}
	}
	return added, removed
}
