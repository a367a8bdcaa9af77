package paginate

import (
	"strings"
	"testing"

	"leaf/common"
	"leaf/content"
)

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "   ", 10, nil},
		{"single line", "alpha beta", 10, []string{"alpha beta"}},
		{"wraps", "alpha beta gamma", 10, []string{"alpha beta", "gamma"}},
		{"hard break", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"mixed", "a abcdefg b", 3, []string{"a", "abc", "def", "g b"}},
		{"degenerate width", "a b", 0, []string{"a", "b"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapText(c.text, c.width)
			if len(got) != len(c.want) {
				t.Fatalf("got %d lines %q, want %d", len(got), got, len(c.want))
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestBlockHeight(t *testing.T) {
	m := NewTextMeasurer()
	text := "alpha beta gamma" // 2 lines at width 10, 3 at width 6

	cases := []struct {
		name  string
		block *content.Block
		width int
		want  int
	}{
		{"paragraph", &content.Block{Kind: common.BlockKindParagraph, Text: text}, 10, 3},
		{"heading pads", &content.Block{Kind: common.BlockKindHeading, Text: text}, 10, 4},
		{"quote indents", &content.Block{Kind: common.BlockKindQuote, Text: text}, 10, 4},
		{"list indents", &content.Block{Kind: common.BlockKindList, Text: text}, 10, 4},
		{"image scaled", &content.Block{Kind: common.BlockKindImage, ImageWidth: 160, ImageHeight: 160}, 30, 11},
		{"image shrunk to width", &content.Block{Kind: common.BlockKindImage, ImageWidth: 160, ImageHeight: 160}, 10, 6},
		{"image capped", &content.Block{Kind: common.BlockKindImage, ImageWidth: 160, ImageHeight: 800}, 30, 21},
		{"image without dimensions", &content.Block{Kind: common.BlockKindImage}, 30, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := m.BlockHeight(c.block, c.width)
			if err != nil {
				t.Fatalf("BlockHeight() error = %v", err)
			}
			if got != c.want {
				t.Errorf("height = %d, want %d", got, c.want)
			}
		})
	}
}

func TestBlockHeightBadWidth(t *testing.T) {
	m := NewTextMeasurer()
	if _, err := m.BlockHeight(&content.Block{Text: "x"}, 0); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestBlockHeightDeterministic(t *testing.T) {
	m := NewTextMeasurer()
	b := &content.Block{Kind: common.BlockKindParagraph, Text: strings.Repeat("word ", 500)}
	first, err := m.BlockHeight(b, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		h, err := m.BlockHeight(b, 42)
		if err != nil || h != first {
			t.Fatalf("pass %d: height %d (err %v), want %d", i, h, err, first)
		}
	}
}
