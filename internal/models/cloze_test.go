package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCloze(t *testing.T) {
	tests := []struct {
		name       string
		passage    string
		wantSlots  int
		wantPieces int
	}{
		{
			name:       "two blanks",
			passage:    "The ___ jumps over the ___ dog",
			wantSlots:  2,
			wantPieces: 3,
		},
		{
			name:       "no blanks",
			passage:    "Nothing to fill here",
			wantSlots:  0,
			wantPieces: 1,
		},
		{
			name:       "leading and trailing blanks",
			passage:    "___ middle ___",
			wantSlots:  2,
			wantPieces: 3,
		},
		{
			name:       "empty passage",
			passage:    "",
			wantSlots:  0,
			wantPieces: 1,
		},
		{
			name:       "adjacent blanks",
			passage:    "______",
			wantSlots:  2,
			wantPieces: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := ParseCloze(tt.passage)
			assert.Len(t, segments, tt.wantPieces)
			assert.Equal(t, tt.wantSlots, CountBlanks(tt.passage))

			// Slots are numbered by occurrence; only the final segment
			// carries no slot.
			for i, seg := range segments {
				if i == len(segments)-1 {
					assert.Equal(t, -1, seg.SlotIndex)
				} else {
					assert.Equal(t, i, seg.SlotIndex)
				}
			}
		})
	}
}

func TestParseClozeRejoinsToPassage(t *testing.T) {
	passages := []string{
		"The ___ jumps over the ___ dog",
		"___ starts the sentence",
		"ends with ___",
		"no blanks at all",
	}

	for _, passage := range passages {
		segments := ParseCloze(passage)
		var b strings.Builder
		for i, seg := range segments {
			b.WriteString(seg.Literal)
			if i < len(segments)-1 {
				b.WriteString(BlankMarker)
			}
		}
		assert.Equal(t, passage, b.String())
	}
}

func TestParseClozeIsRestartable(t *testing.T) {
	passage := "a ___ b ___ c"
	first := ParseCloze(passage)
	second := ParseCloze(passage)
	assert.Equal(t, first, second)
}

func TestRenderCloze(t *testing.T) {
	passage := "The ___ jumps over the ___ dog"

	t.Run("all slots filled", func(t *testing.T) {
		got := RenderCloze(passage, map[string]string{
			"blank-0": "fox",
			"blank-1": "lazy",
		})
		assert.Equal(t, "The fox jumps over the lazy dog", got)
	})

	t.Run("partial fill leaves markers", func(t *testing.T) {
		got := RenderCloze(passage, map[string]string{"blank-0": "fox"})
		assert.Equal(t, "The fox jumps over the ___ dog", got)
	})

	t.Run("nil answers", func(t *testing.T) {
		got := RenderCloze(passage, nil)
		assert.Equal(t, passage, got)
	})
}

func TestBlankKey(t *testing.T) {
	assert.Equal(t, "blank-0", BlankKey(0))
	assert.Equal(t, "blank-7", BlankKey(7))
}
