package content

import (
	stdhtml "html"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// StripMarkup extracts the plain text content from rendered markup. Tags are
// dropped, entities resolved and whitespace collapsed. Used to obtain the
// measurable text of a block whose source representation carries inline
// markup (emphasis, links and so on).
func StripMarkup(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return normalizeSpace(markup)
	}
	l := html.NewLexer(parse.NewInputString(markup))
	var sb strings.Builder
	for {
		tt, data := l.Next()
		switch tt {
		case html.ErrorToken:
			return normalizeSpace(stdhtml.UnescapeString(sb.String()))
		case html.TextToken:
			sb.Write(data)
		case html.StartTagToken, html.EndTagToken:
			// block-level breaks inside markup become plain spaces,
			// pagination works with whole blocks anyway
			sb.WriteByte(' ')
		}
	}
}

// normalizeSpace collapses any run of whitespace into a single space and
// trims the ends.
func normalizeSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
