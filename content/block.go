package content

import (
	"fmt"
	"strings"

	"leaf/common"
)

// Block is a single unit of extracted book content: a paragraph, heading,
// list, quote, image or fact. Blocks are immutable once extracted - the
// pager derives new fragment blocks instead of mutating existing ones.
type Block struct {
	ID     string
	Kind   common.BlockKind
	Text   string // plain text with markup stripped, used for measurement
	Markup string // rendered markup as present in the source
	Words  int

	// set only for image blocks, intrinsic pixel dimensions
	ImageWidth  int
	ImageHeight int

	// set only on fragments derived by pagination
	SourceID   string // ID of the block this fragment was cut from
	WordOffset int    // word offset of this fragment within the source text
}

// IsFragment reports whether the block was derived by splitting a paragraph
// across a page boundary.
func (b *Block) IsFragment() bool {
	return b.SourceID != ""
}

// AnchorID is the identity used to find a block again after repagination.
// Fragments anchor to the block they were cut from.
func (b *Block) AnchorID() string {
	if b.IsFragment() {
		return b.SourceID
	}
	return b.ID
}

// Fragment derives a new block carrying count words of b starting at word
// offset within b's own text. Offsets on the result are absolute relative
// to the original source block, so fragments of fragments stay addressable.
func (b *Block) Fragment(offset, count int) *Block {
	words := strings.Fields(b.Text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(words) {
		offset = len(words)
	}
	if count < 0 || offset+count > len(words) {
		count = len(words) - offset
	}
	src := b.SourceID
	base := b.WordOffset
	if src == "" {
		src = b.ID
	}
	return &Block{
		ID:         fmt.Sprintf("%s@%d+%d", src, base+offset, count),
		Kind:       b.Kind,
		Text:       strings.Join(words[offset:offset+count], " "),
		Words:      count,
		SourceID:   src,
		WordOffset: base + offset,
	}
}

// CountWords counts whitespace-separated words. It is the only word-counting
// rule in the program: fragmentation offsets, page word counts and reading
// time estimates all depend on it agreeing with strings.Fields.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
