package content

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"leaf/common"
)

// parsePlainText extracts blocks from plain text with light markdown-ish
// conventions: blank lines separate blocks, '#' prefixes and short ALL-CAPS
// lines are headings, '>' prefixes are quotes, '-'/'*' bullets are lists.
func parsePlainText(data []byte, srcName string, log *zap.Logger) (*Content, error) {
	c := &Content{SrcName: srcName, Lang: language.English}

	var (
		blocks []*Block
		seq    int
		para   []string
	)
	emit := func(kind common.BlockKind, text string) {
		text = normalizeSpace(text)
		if len(text) == 0 {
			return
		}
		seq++
		blocks = append(blocks, &Block{
			ID:     fmt.Sprintf("blk-%04d", seq),
			Kind:   kind,
			Text:   text,
			Markup: text,
			Words:  CountWords(text),
		})
	}
	flush := func() {
		if len(para) == 0 {
			return
		}
		text := strings.Join(para, " ")
		para = para[:0]
		emit(classifyParagraph(text), text)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		trimmed := strings.TrimSpace(line)
		switch {
		case len(trimmed) == 0:
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			emit(common.BlockKindHeading, strings.TrimLeft(trimmed, "# "))
		case strings.HasPrefix(trimmed, ">"):
			flush()
			emit(common.BlockKindQuote, strings.TrimLeft(trimmed, "> "))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flush()
			emit(common.BlockKindList, trimmed)
		default:
			para = append(para, trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan plain text: %w", err)
	}
	flush()

	if len(blocks) == 0 {
		return nil, fmt.Errorf("no content blocks extracted from %q", srcName)
	}
	if len(blocks) > 0 && blocks[0].Kind == common.BlockKindHeading {
		c.Title = blocks[0].Text
	}
	c.Blocks = blocks
	return c, nil
}

// classifyParagraph promotes short shouting lines to headings - a common
// convention in gutenberg-style plain text books.
func classifyParagraph(text string) common.BlockKind {
	if CountWords(text) <= 8 && len(text) <= 60 && isAllCaps(text) {
		return common.BlockKindHeading
	}
	return common.BlockKindParagraph
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
