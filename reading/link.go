package reading

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// Shareable address format:
//
//	leaf://<title-slug>/<book-id>?c=<chapter>&p=<page>
//
// The slug is cosmetic; identity is the book id. An address whose book id
// does not match the open book means "no locator supplied".
const linkScheme = "leaf"

// Link is a decoded shareable address.
type Link struct {
	BookID string
	Loc    Locator
}

// EncodeLink builds the shareable address for a position.
func EncodeLink(bookID, title string, loc Locator) string {
	host := slug.Make(title)
	if host == "" {
		host = "book"
	}
	q := url.Values{}
	q.Set("c", strconv.Itoa(loc.Chapter))
	q.Set("p", strconv.Itoa(loc.Page))
	u := url.URL{
		Scheme:   linkScheme,
		Host:     host,
		Path:     "/" + bookID,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ParseLink decodes a shareable address. Malformed input is an error so the
// caller can log it; the coordinator then treats it as an absent source.
func ParseLink(s string) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return Link{}, fmt.Errorf("unable to parse link: %w", err)
	}
	if u.Scheme != linkScheme {
		return Link{}, fmt.Errorf("unexpected link scheme %q", u.Scheme)
	}
	bookID := strings.Trim(u.Path, "/")
	if bookID == "" {
		return Link{}, fmt.Errorf("link carries no book id")
	}
	q := u.Query()
	c, err := strconv.Atoi(q.Get("c"))
	if err != nil {
		return Link{}, fmt.Errorf("link chapter index: %w", err)
	}
	p, err := strconv.Atoi(q.Get("p"))
	if err != nil {
		return Link{}, fmt.Errorf("link page index: %w", err)
	}
	loc := Locator{Chapter: c, Page: p}
	if !loc.Wellformed() {
		return Link{}, fmt.Errorf("link position %v out of shape", loc)
	}
	return Link{BookID: bookID, Loc: loc}, nil
}

// LinkChannel is the addressable-location store: whatever surface carries
// the session's shareable address (the UI status line, a --at flag, a
// window title). The coordinator keeps it synchronized with the canonical
// position.
type LinkChannel interface {
	Current() string
	Set(link string)
}

// MemoryLink is a LinkChannel held in memory, primed from a command line
// flag and displayed by the UI.
type MemoryLink struct {
	link string
}

func NewMemoryLink(initial string) *MemoryLink {
	return &MemoryLink{link: initial}
}

func (m *MemoryLink) Current() string { return m.link }
func (m *MemoryLink) Set(link string) { m.link = link }
