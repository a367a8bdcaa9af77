package content

import (
	"testing"

	"leaf/common"
)

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three", 3},
		{"\ttabs and\nnewlines count ", 4},
	}
	for _, c := range cases {
		if got := CountWords(c.text); got != c.want {
			t.Errorf("CountWords(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestFragment(t *testing.T) {
	b := &Block{
		ID:    "blk-0001",
		Kind:  common.BlockKindParagraph,
		Text:  "one two three four five six",
		Words: 6,
	}

	head := b.Fragment(0, 4)
	if head.ID != "blk-0001@0+4" || head.Text != "one two three four" || head.Words != 4 {
		t.Errorf("head = %+v", head)
	}
	if !head.IsFragment() || head.AnchorID() != "blk-0001" || head.WordOffset != 0 {
		t.Errorf("head identity = source %q offset %d", head.AnchorID(), head.WordOffset)
	}

	rest := b.Fragment(4, 2)
	if rest.ID != "blk-0001@4+2" || rest.Text != "five six" || rest.WordOffset != 4 {
		t.Errorf("rest = %+v", rest)
	}

	// fragments of fragments keep offsets absolute against the original
	sub := rest.Fragment(1, 1)
	if sub.ID != "blk-0001@5+1" || sub.Text != "six" || sub.WordOffset != 5 {
		t.Errorf("nested fragment = %+v", sub)
	}
	if sub.AnchorID() != "blk-0001" {
		t.Errorf("nested fragment anchors to %q", sub.AnchorID())
	}
}

func TestFragmentClampsRange(t *testing.T) {
	b := &Block{ID: "b", Text: "a b c", Words: 3}

	if f := b.Fragment(-2, 10); f.Text != "a b c" || f.WordOffset != 0 {
		t.Errorf("out-of-range fragment = %+v", f)
	}
	if f := b.Fragment(2, -1); f.Text != "c" || f.Words != 1 {
		t.Errorf("negative count fragment = %+v", f)
	}
	if f := b.Fragment(5, 1); f.Words != 0 {
		t.Errorf("past-the-end fragment = %+v", f)
	}
}

func TestAnchorIDWholeBlock(t *testing.T) {
	b := &Block{ID: "blk-0009"}
	if b.IsFragment() || b.AnchorID() != "blk-0009" {
		t.Errorf("whole block anchor = %q", b.AnchorID())
	}
}
