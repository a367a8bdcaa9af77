// Package common keeps enums shared between content extraction, pagination
// and the UI so that none of those packages has to import another one just
// for a discriminant type.
package common

// Kind of a content block. Pagination and rendering switch over this
// exhaustively - adding a kind is a reviewed change, not duck-typing.
// ENUM(paragraph, heading, list, quote, image, fact)
type BlockKind int

// IsSplittable reports whether pagination may fragment a block of this kind
// across a page boundary. Only plain paragraphs are.
func (k BlockKind) IsSplittable() bool {
	return k == BlockKindParagraph
}

// IsHeading reports whether a block of this kind may serve as a chapter title.
func (k BlockKind) IsHeading() bool {
	return k == BlockKindHeading
}

// Navigation action dispatched from the UI chrome.
// ENUM(prev, next, home, end)
type NavAction int
