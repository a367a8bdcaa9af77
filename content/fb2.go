package content

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"

	"leaf/common"
)

// parseBookXML extracts blocks from an FB2-subset XML document. Only the
// structural elements that matter for pagination are mapped; everything
// else contributes its text to the enclosing block or is skipped.
func parseBookXML(data []byte, srcName string, log *zap.Logger) (*Content, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse book XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("book XML in %q has no root element", srcName)
	}

	c := &Content{SrcName: srcName, Lang: language.Und}

	if ti := root.FindElement("./description/title-info"); ti != nil {
		if bt := ti.FindElement("./book-title"); bt != nil {
			c.Title = strings.TrimSpace(bt.Text())
		}
		if ln := ti.FindElement("./lang"); ln != nil {
			if tag, err := language.Parse(strings.TrimSpace(ln.Text())); err == nil {
				c.Lang = tag
			} else {
				log.Warn("Unable to parse book language", zap.String("lang", ln.Text()), zap.Error(err))
			}
		}
	}
	if id := root.FindElement("./description/document-info/id"); id != nil {
		c.BookID = strings.TrimSpace(id.Text())
	}

	p := &xmlExtractor{
		log:      log,
		binaries: collectBinaries(root, log),
	}
	for _, body := range root.FindElements("./body") {
		// additional bodies carry notes and comments, not reading flow
		if name := body.SelectAttrValue("name", ""); name != "" {
			log.Debug("Skipping auxiliary body", zap.String("name", name))
			continue
		}
		p.walk(body)
	}
	if root.Tag != "FictionBook" && len(p.blocks) == 0 {
		// not FB2 at all - treat the whole document as loose markup
		p.walk(root)
	}
	if len(p.blocks) == 0 {
		return nil, fmt.Errorf("no content blocks extracted from %q", srcName)
	}
	c.Blocks = p.blocks
	return c, nil
}

type xmlExtractor struct {
	log      *zap.Logger
	binaries map[string][]byte
	blocks   []*Block
	seq      int
}

func (p *xmlExtractor) emit(kind common.BlockKind, markup string) {
	text := StripMarkup(markup)
	if len(text) == 0 {
		return
	}
	p.seq++
	p.blocks = append(p.blocks, &Block{
		ID:     fmt.Sprintf("blk-%04d", p.seq),
		Kind:   kind,
		Text:   text,
		Markup: markup,
		Words:  CountWords(text),
	})
}

func (p *xmlExtractor) emitImage(el *etree.Element) {
	href := el.SelectAttrValue("href", "")
	for _, a := range el.Attr {
		// href is usually in the xlink namespace
		if a.Key == "href" {
			href = a.Value
		}
	}
	id := strings.TrimPrefix(href, "#")
	data, ok := p.binaries[id]
	if !ok {
		p.log.Warn("Image reference without binary payload, skipping", zap.String("href", href))
		return
	}
	w, h, err := ImageSize(data)
	if err != nil {
		p.log.Warn("Unable to measure image, skipping", zap.String("href", href), zap.Error(err))
		return
	}
	p.seq++
	p.blocks = append(p.blocks, &Block{
		ID:          fmt.Sprintf("blk-%04d", p.seq),
		Kind:        common.BlockKindImage,
		Text:        fmt.Sprintf("[image %s]", id),
		Markup:      elementMarkup(el),
		Words:       0,
		ImageWidth:  w,
		ImageHeight: h,
	})
}

// walk maps structural elements onto block kinds in document order.
func (p *xmlExtractor) walk(el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "title", "subtitle", "h1", "h2", "h3":
			p.emit(common.BlockKindHeading, elementMarkup(child))
		case "p":
			p.emit(common.BlockKindParagraph, elementMarkup(child))
		case "poem", "cite", "epigraph", "blockquote":
			p.emit(common.BlockKindQuote, elementMarkup(child))
		case "ul", "ol", "list":
			p.emit(common.BlockKindList, elementMarkup(child))
		case "fact":
			p.emit(common.BlockKindFact, elementMarkup(child))
		case "image", "img":
			p.emitImage(child)
		case "empty-line":
			// vertical whitespace is a rendering concern, not content
		case "section", "body", "div":
			p.walk(child)
		default:
			// unknown structural element - recurse rather than drop content
			if len(child.ChildElements()) > 0 {
				p.walk(child)
			} else {
				p.emit(common.BlockKindParagraph, elementMarkup(child))
			}
		}
	}
}

func collectBinaries(root *etree.Element, log *zap.Logger) map[string][]byte {
	out := make(map[string][]byte)
	for _, bin := range root.FindElements("./binary") {
		id := bin.SelectAttrValue("id", "")
		if id == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(strings.Map(dropSpace, bin.Text()))
		if err != nil {
			log.Warn("Unable to decode binary payload", zap.String("id", id), zap.Error(err))
			continue
		}
		out[id] = data
	}
	return out
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\t', '\r', '\n':
		return -1
	}
	return r
}

// elementMarkup serializes an element back to its source markup so blocks
// keep their rendered form while measurement uses the stripped text.
func elementMarkup(el *etree.Element) string {
	d := etree.NewDocument()
	d.SetRoot(el.Copy())
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return el.Text()
	}
	return strings.TrimSpace(buf.String())
}
