package paginate

// Anchor is a stable reference to a point in the content, used to preserve
// the reading position across a Book rebuild. Raw page indices shift when
// the page height changes; block identity does not. Fragments anchor to the
// source block they were cut from, with the word offset disambiguating
// which part of a long paragraph the reader was looking at.
type Anchor struct {
	BlockID    string
	WordOffset int
}

// IsZero reports whether the anchor references nothing.
func (a Anchor) IsZero() bool {
	return a.BlockID == ""
}

// AnchorFor captures an anchor for the first content block of a page.
func AnchorFor(pg *Page) Anchor {
	if pg == nil || len(pg.Blocks) == 0 {
		return Anchor{}
	}
	b := pg.Blocks[0]
	return Anchor{BlockID: b.AnchorID(), WordOffset: b.WordOffset}
}

// FindPageForAnchor locates the page in a freshly built Book that contains
// the anchored content. Preference order: the page holding the exact word
// offset of the anchored block, then any page holding the block at all.
// Returns ok=false when the block no longer exists (content re-extraction);
// callers fall back to clamping the previous locator.
func (b *Book) FindPageForAnchor(a Anchor) (chapter, page int, ok bool) {
	if b == nil || a.IsZero() {
		return 0, 0, false
	}
	firstChapter, firstPage := -1, -1
	for ci, ch := range b.Chapters {
		for pi, pg := range ch.Pages {
			for _, blk := range pg.Blocks {
				if blk.AnchorID() != a.BlockID {
					continue
				}
				if firstChapter < 0 {
					firstChapter, firstPage = ci, pi
				}
				if a.WordOffset >= blk.WordOffset && (blk.Words == 0 || a.WordOffset < blk.WordOffset+blk.Words) {
					return ci, pi, true
				}
			}
		}
	}
	if firstChapter >= 0 {
		return firstChapter, firstPage, true
	}
	return 0, 0, false
}
