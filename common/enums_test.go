package common

import "testing"

func TestBlockKindParse(t *testing.T) {
	kinds := []BlockKind{
		BlockKindParagraph, BlockKindHeading, BlockKindList,
		BlockKindQuote, BlockKindImage, BlockKindFact,
	}
	for _, k := range kinds {
		parsed, err := ParseBlockKind(k.String())
		if err != nil {
			t.Errorf("ParseBlockKind(%q) error = %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseBlockKind(%q) = %v, want %v", k.String(), parsed, k)
		}
		if !k.IsValid() {
			t.Errorf("%v reported invalid", k)
		}
	}
	if len(BlockKindNames()) != len(kinds) {
		t.Errorf("BlockKindNames() = %v", BlockKindNames())
	}
	if _, err := ParseBlockKind("bogus"); err == nil {
		t.Error("expected error for unknown block kind")
	}
	if BlockKind(99).IsValid() {
		t.Error("out-of-range kind reported valid")
	}
}

func TestBlockKindTraits(t *testing.T) {
	kinds := []BlockKind{
		BlockKindParagraph, BlockKindHeading, BlockKindList,
		BlockKindQuote, BlockKindImage, BlockKindFact,
	}
	for _, k := range kinds {
		if got := k.IsSplittable(); got != (k == BlockKindParagraph) {
			t.Errorf("%v IsSplittable() = %v", k, got)
		}
		if got := k.IsHeading(); got != (k == BlockKindHeading) {
			t.Errorf("%v IsHeading() = %v", k, got)
		}
	}
}

func TestNavActionParse(t *testing.T) {
	actions := []NavAction{NavActionPrev, NavActionNext, NavActionHome, NavActionEnd}
	for _, a := range actions {
		parsed, err := ParseNavAction(a.String())
		if err != nil {
			t.Errorf("ParseNavAction(%q) error = %v", a.String(), err)
		}
		if parsed != a {
			t.Errorf("ParseNavAction(%q) = %v, want %v", a.String(), parsed, a)
		}
	}
	if NavAction(99).IsValid() {
		t.Error("out-of-range action reported valid")
	}
}

func TestBlockKindText(t *testing.T) {
	data, err := BlockKindQuote.MarshalText()
	if err != nil || string(data) != "quote" {
		t.Fatalf("MarshalText() = %q, %v", data, err)
	}
	var k BlockKind
	if err := k.UnmarshalText([]byte("image")); err != nil || k != BlockKindImage {
		t.Errorf("UnmarshalText() = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for unknown name")
	}
}
