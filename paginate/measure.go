// Package paginate implements the pagination engine: a deterministic greedy
// bin-packer that lays content blocks out into fixed-height pages, and the
// chapter builder that groups pages into fixed-size chapters.
package paginate

import (
	"fmt"
	"strings"

	"leaf/common"
	"leaf/content"
)

// Measurer reports the rendered height of a block at a given content width.
// Measurement depends on the display surface, so it is a capability handed
// to the pager, not something the pager computes. A Measurer must be a pure
// function of (block, width) - pagination determinism depends on it.
type Measurer interface {
	BlockHeight(b *content.Block, width int) (int, error)
}

// TextMeasurer measures blocks for a monospace display surface: text height
// is greedy word-wrapped line count in rows, images scale their intrinsic
// height to the content width using the terminal cell aspect ratio.
//
// The reader UI renders through WrapText with the same width, so measured
// and drawn heights agree by construction.
type TextMeasurer struct {
	BlockGap       int // blank rows appended after every block
	HeadingPad     int // extra rows around a heading
	QuoteIndent    int // columns taken from the content width for quote/list/fact blocks
	CellAspect     int // image pixels per terminal row (pixels per column is CellAspect/2)
	MaxImageHeight int // image display height cap in rows
}

// NewTextMeasurer returns a measurer with the defaults the reader uses.
func NewTextMeasurer() *TextMeasurer {
	return &TextMeasurer{
		BlockGap:       1,
		HeadingPad:     1,
		QuoteIndent:    4,
		CellAspect:     16,
		MaxImageHeight: 20,
	}
}

func (m *TextMeasurer) BlockHeight(b *content.Block, width int) (int, error) {
	if width <= 0 {
		return 0, fmt.Errorf("non-positive content width %d", width)
	}
	switch b.Kind {
	case common.BlockKindImage:
		return m.imageHeight(b, width), nil
	case common.BlockKindQuote, common.BlockKindList, common.BlockKindFact:
		w := width - m.QuoteIndent
		if w < 1 {
			w = 1
		}
		return len(WrapText(b.Text, w)) + m.BlockGap, nil
	case common.BlockKindHeading:
		return len(WrapText(b.Text, width)) + m.BlockGap + m.HeadingPad, nil
	default:
		return len(WrapText(b.Text, width)) + m.BlockGap, nil
	}
}

func (m *TextMeasurer) imageHeight(b *content.Block, width int) int {
	if b.ImageWidth <= 0 || b.ImageHeight <= 0 {
		return 1 + m.BlockGap
	}
	// columns are roughly half as wide as rows are tall
	colPixels := m.CellAspect / 2
	if colPixels < 1 {
		colPixels = 1
	}
	displayCols := b.ImageWidth / colPixels
	rows := b.ImageHeight / m.CellAspect
	if displayCols > width && displayCols > 0 {
		rows = rows * width / displayCols
	}
	if rows < 1 {
		rows = 1
	}
	if rows > m.MaxImageHeight {
		rows = m.MaxImageHeight
	}
	return rows + m.BlockGap
}

// WrapText greedily wraps text into lines of at most width runes. Words
// longer than the width are hard-broken. The result is never empty for
// non-empty text.
func WrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}
	var (
		lines []string
		cur   strings.Builder
		used  int
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			used = 0
		}
	}
	for _, w := range words {
		runes := []rune(w)
		for len(runes) > width {
			flush()
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		n := len(runes)
		if n == 0 {
			continue
		}
		switch {
		case used == 0:
			cur.WriteString(string(runes))
			used = n
		case used+1+n <= width:
			cur.WriteByte(' ')
			cur.WriteString(string(runes))
			used += 1 + n
		default:
			flush()
			cur.WriteString(string(runes))
			used = n
		}
	}
	flush()
	return lines
}
