package paginate

import (
	"fmt"

	"leaf/content"
)

// Page is an ordered run of blocks that fits the page height it was built
// for. Index is local to the owning chapter, GlobalIndex spans the book.
type Page struct {
	Blocks         []*content.Block
	Index          int
	GlobalIndex    int
	Height         int
	Words          int
	ReadingMinutes float64
}

// Chapter is a fixed-size run of consecutive pages. StartPage/EndPage are
// global page indices; chapter ranges partition the global page sequence
// with no gaps or overlaps.
type Chapter struct {
	Title          string
	Pages          []*Page
	StartPage      int
	EndPage        int
	Words          int
	ReadingMinutes float64
	IsPartial      bool
}

// Book is the fully derived pagination of a block sequence at one viewport
// size. It is immutable once built: a viewport change produces a new Book,
// never an in-place mutation, so holders of an old reference are invalidated
// by reference identity.
type Book struct {
	Chapters       []*Chapter
	PageCount      int
	Words          int
	ReadingMinutes float64
}

// NavInfo is derived navigation state for one position in a Book.
type NavInfo struct {
	GlobalIndex int
	PageCount   int
	Percent     float64
	HasPrev     bool
	HasNext     bool
}

// BuildOptions controls chapter grouping.
type BuildOptions struct {
	PagesPerChapter int // default 5
	TitleScanPages  int // pages inspected for a heading-derived title, default 2
	TitleMaxLen     int // title truncation bound in runes, default 48
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.PagesPerChapter <= 0 {
		o.PagesPerChapter = 5
	}
	if o.TitleScanPages <= 0 {
		o.TitleScanPages = 2
	}
	if o.TitleMaxLen <= 0 {
		o.TitleMaxLen = 48
	}
	return o
}

// BuildChapters slices pages into consecutive runs of PagesPerChapter. The
// final chapter may be shorter and is marked partial. Every chapter holds at
// least one page; an empty page list produces a Book with no chapters.
func BuildChapters(pages []*Page, opts BuildOptions) *Book {
	opts = opts.withDefaults()

	book := &Book{PageCount: len(pages)}
	for start := 0; start < len(pages); start += opts.PagesPerChapter {
		end := start + opts.PagesPerChapter
		if end > len(pages) {
			end = len(pages)
		}
		ch := &Chapter{
			Pages:     pages[start:end],
			StartPage: start,
			EndPage:   end - 1,
			IsPartial: end-start < opts.PagesPerChapter,
		}
		for i, pg := range ch.Pages {
			pg.Index = i
			pg.GlobalIndex = start + i
			ch.Words += pg.Words
			ch.ReadingMinutes += pg.ReadingMinutes
		}
		ch.Title = deriveTitle(ch, len(book.Chapters), opts)
		book.Chapters = append(book.Chapters, ch)
		book.Words += ch.Words
		book.ReadingMinutes += ch.ReadingMinutes
	}
	return book
}

// deriveTitle scans the first few pages of a chapter for a heading block and
// uses its text, truncated; otherwise synthesizes an ordinal title.
func deriveTitle(ch *Chapter, ordinal int, opts BuildOptions) string {
	scan := opts.TitleScanPages
	if scan > len(ch.Pages) {
		scan = len(ch.Pages)
	}
	for _, pg := range ch.Pages[:scan] {
		for _, b := range pg.Blocks {
			if b.Kind.IsHeading() {
				return truncate(b.Text, opts.TitleMaxLen)
			}
		}
	}
	return fmt.Sprintf("Chapter %d", ordinal+1)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Page returns the page at (chapter, page) or nil when out of range.
func (b *Book) Page(chapter, page int) *Page {
	if b == nil || chapter < 0 || chapter >= len(b.Chapters) {
		return nil
	}
	ch := b.Chapters[chapter]
	if page < 0 || page >= len(ch.Pages) {
		return nil
	}
	return ch.Pages[page]
}

// GlobalIndex translates (chapter, page) to a global page index, -1 when out
// of range.
func (b *Book) GlobalIndex(chapter, page int) int {
	pg := b.Page(chapter, page)
	if pg == nil {
		return -1
	}
	return pg.GlobalIndex
}

// FindPageByGlobalIndex translates a global page index into a (chapter,
// page) pair. This and GlobalIndex are the only supported translations
// between the two addressing schemes.
func (b *Book) FindPageByGlobalIndex(gi int) (chapter, page int, ok bool) {
	if b == nil || gi < 0 || gi >= b.PageCount {
		return 0, 0, false
	}
	for ci, ch := range b.Chapters {
		if gi >= ch.StartPage && gi <= ch.EndPage {
			return ci, gi - ch.StartPage, true
		}
	}
	// unreachable while chapter ranges partition the page sequence
	return 0, 0, false
}

// NavigationInfo reports progress and affordance state for a position.
// Out-of-range positions clamp to the nearest valid page.
func (b *Book) NavigationInfo(chapter, page int) NavInfo {
	if b == nil || b.PageCount == 0 {
		return NavInfo{}
	}
	gi := b.GlobalIndex(chapter, page)
	if gi < 0 {
		if chapter >= len(b.Chapters) {
			gi = b.PageCount - 1
		} else {
			gi = 0
		}
	}
	return NavInfo{
		GlobalIndex: gi,
		PageCount:   b.PageCount,
		Percent:     float64(gi+1) / float64(b.PageCount) * 100,
		HasPrev:     gi > 0,
		HasNext:     gi < b.PageCount-1,
	}
}
