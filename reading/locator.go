// Package reading owns the canonical reading position: the Locator type,
// the coordinator that arbitrates between its competing sources (shareable
// link, durable progress record, live updates) and the channels the
// position is mirrored to.
package reading

import "leaf/paginate"

// Locator is the sole unit of reading position: a (chapter, page) pair.
// A locator held by any component is only meaningful against the Book it
// was validated for - rebuilds invalidate by reference.
type Locator struct {
	Chapter int `json:"chapterIndex"`
	Page    int `json:"pageIndex"`
}

// Wellformed reports whether the locator has a plausible shape. Malformed
// locators from a link or the store are treated as absent, never as errors.
func (l Locator) Wellformed() bool {
	return l.Chapter >= 0 && l.Page >= 0
}

// IsZero reports the default start-of-book position.
func (l Locator) IsZero() bool {
	return l.Chapter == 0 && l.Page == 0
}

// Clamp forces a locator into the valid range of a book. For a nil or empty
// book the result is the zero locator.
func Clamp(l Locator, book *paginate.Book) Locator {
	if book == nil || len(book.Chapters) == 0 {
		return Locator{}
	}
	if l.Chapter < 0 {
		l.Chapter = 0
	}
	if l.Chapter >= len(book.Chapters) {
		l.Chapter = len(book.Chapters) - 1
	}
	pages := len(book.Chapters[l.Chapter].Pages)
	if l.Page < 0 {
		l.Page = 0
	}
	if l.Page >= pages {
		l.Page = pages - 1
	}
	return l
}
