package content

import (
	"encoding/base64"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"leaf/common"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func fb2Doc(t *testing.T) []byte {
	t.Helper()
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<FictionBook>
  <description>
    <title-info>
      <book-title>Test Book</book-title>
      <lang>en</lang>
    </title-info>
    <document-info>
      <id>6ba7b810-9dad-11d1-80b4-00c04fd430c8</id>
    </document-info>
  </description>
  <body>
    <section>
      <title><p>Chapter One</p></title>
      <p>First <emphasis>paragraph</emphasis> text.</p>
      <empty-line/>
      <cite><p>a quoted passage</p></cite>
      <image href="#pic.png"/>
    </section>
  </body>
  <body name="notes">
    <p>auxiliary note, not reading flow</p>
  </body>
  <binary id="pic.png" content-type="image/png">%s</binary>
</FictionBook>`, tinyPNG))
}

func TestParseBookXML(t *testing.T) {
	c, err := parseBookXML(fb2Doc(t), "book.fb2", zap.NewNop())
	if err != nil {
		t.Fatalf("parseBookXML() error = %v", err)
	}

	if c.Title != "Test Book" {
		t.Errorf("title = %q", c.Title)
	}
	if c.BookID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("book id = %q", c.BookID)
	}
	if base, _ := c.Lang.Base(); base.String() != "en" {
		t.Errorf("language = %v", c.Lang)
	}

	want := []struct {
		kind common.BlockKind
		text string
	}{
		{common.BlockKindHeading, "Chapter One"},
		{common.BlockKindParagraph, "First paragraph text."},
		{common.BlockKindQuote, "a quoted passage"},
		{common.BlockKindImage, "[image pic.png]"},
	}
	if len(c.Blocks) != len(want) {
		t.Fatalf("extracted %d blocks, want %d: %+v", len(c.Blocks), len(want), c.Blocks)
	}
	for i, w := range want {
		b := c.Blocks[i]
		if b.Kind != w.kind || b.Text != w.text {
			t.Errorf("block %d = %v %q, want %v %q", i, b.Kind, b.Text, w.kind, w.text)
		}
	}

	img := c.Blocks[3]
	if img.ImageWidth != 1 || img.ImageHeight != 1 {
		t.Errorf("image dimensions = %dx%d, want 1x1", img.ImageWidth, img.ImageHeight)
	}
}

func TestParseBookXMLImageWithoutBinary(t *testing.T) {
	doc := []byte(`<FictionBook><body><section>
		<p>text</p>
		<image href="#missing"/>
	</section></body></FictionBook>`)

	c, err := parseBookXML(doc, "book.fb2", zap.NewNop())
	if err != nil {
		t.Fatalf("parseBookXML() error = %v", err)
	}
	if len(c.Blocks) != 1 || c.Blocks[0].Kind != common.BlockKindParagraph {
		t.Errorf("blocks = %+v, dangling image reference must be dropped", c.Blocks)
	}
}

func TestParseBookXMLNoContent(t *testing.T) {
	doc := []byte(`<FictionBook><body><section><empty-line/></section></body></FictionBook>`)
	if _, err := parseBookXML(doc, "book.fb2", zap.NewNop()); err == nil {
		t.Error("expected error for a document without content blocks")
	}
}

func TestImageSize(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(tinyPNG)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := ImageSize(data)
	if err != nil {
		t.Fatalf("ImageSize() error = %v", err)
	}
	if w != 1 || h != 1 {
		t.Errorf("ImageSize() = %dx%d, want 1x1", w, h)
	}

	if _, _, err := ImageSize([]byte("not an image")); err == nil {
		t.Error("expected error for non-image payload")
	}
}
