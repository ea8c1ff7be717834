package models

import (
	"fmt"
	"strings"
)

// BlankMarker is the literal that separates cloze segments in a passage.
const BlankMarker = "___"

// ClozeSegment is one literal run of a passage followed by an optional
// blank slot. SlotIndex is -1 for the trailing segment with no blank.
type ClozeSegment struct {
	Literal   string
	SlotIndex int
}

// ParseCloze splits a passage on the blank marker. K raw segments yield
// K-1 blank slots addressed by zero-based occurrence index. The parse is a
// pure function of the passage; render paths re-run it rather than caching
// against a possibly edited passage.
func ParseCloze(passage string) []ClozeSegment {
	parts := strings.Split(passage, BlankMarker)
	segments := make([]ClozeSegment, len(parts))
	for i, part := range parts {
		slot := i
		if i == len(parts)-1 {
			slot = -1
		}
		segments[i] = ClozeSegment{Literal: part, SlotIndex: slot}
	}
	return segments
}

// CountBlanks reports how many blank slots a passage declares.
func CountBlanks(passage string) int {
	return strings.Count(passage, BlankMarker)
}

// BlankKey is the answer-map key for a slot, "blank-0", "blank-1", ...
func BlankKey(slot int) string {
	return fmt.Sprintf("blank-%d", slot)
}

// RenderCloze substitutes filled answers for markers in slot order. Slots
// without an answer render as the bare marker.
func RenderCloze(passage string, answers map[string]string) string {
	var b strings.Builder
	for _, seg := range ParseCloze(passage) {
		b.WriteString(seg.Literal)
		if seg.SlotIndex < 0 {
			continue
		}
		if filled, ok := answers[BlankKey(seg.SlotIndex)]; ok && filled != "" {
			b.WriteString(filled)
		} else {
			b.WriteString(BlankMarker)
		}
	}
	return b.String()
}
