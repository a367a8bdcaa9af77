package content

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestPrepareDetectsFormat(t *testing.T) {
	ctx := context.Background()

	c, err := Prepare(ctx, strings.NewReader("Just a paragraph of plain text."), "plain.txt", zap.NewNop())
	if err != nil {
		t.Fatalf("Prepare(plain) error = %v", err)
	}
	if len(c.Blocks) != 1 {
		t.Errorf("plain text blocks = %d", len(c.Blocks))
	}

	c, err = Prepare(ctx, strings.NewReader("<book><p>xml paragraph</p></book>"), "doc.xml", zap.NewNop())
	if err != nil {
		t.Fatalf("Prepare(xml) error = %v", err)
	}
	if len(c.Blocks) != 1 || c.Blocks[0].Text != "xml paragraph" {
		t.Errorf("xml blocks = %+v", c.Blocks)
	}
}

func TestPrepareDerivesStableBookID(t *testing.T) {
	ctx := context.Background()
	src := "# A Title\n\nBody text here."

	first, err := Prepare(ctx, strings.NewReader(src), "book.txt", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Prepare(ctx, strings.NewReader(src), "book.txt", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uuid.Parse(first.BookID); err != nil {
		t.Errorf("derived id %q is not a UUID: %v", first.BookID, err)
	}
	if first.BookID != second.BookID {
		t.Errorf("same source derived different ids: %q vs %q", first.BookID, second.BookID)
	}

	other, err := Prepare(ctx, strings.NewReader(src), "other.txt", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if other.BookID == first.BookID {
		t.Error("different sources derived the same id")
	}
}

func TestPrepareKeepsValidBookID(t *testing.T) {
	c, err := Prepare(context.Background(), strings.NewReader(string(fb2Doc(t))), "book.fb2", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if c.BookID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("book id = %q, want the declared UUID", c.BookID)
	}
	if c.Words == 0 || c.Sentences == 0 {
		t.Errorf("statistics not computed: %d words, %d sentences", c.Words, c.Sentences)
	}
}

func TestPrepareTitleFallsBackToFilename(t *testing.T) {
	c, err := Prepare(context.Background(), strings.NewReader("body only"), "/books/My Novel.txt", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if c.Title != "My Novel" {
		t.Errorf("title = %q, want source file name", c.Title)
	}
}

func TestPrepareEmptySource(t *testing.T) {
	if _, err := Prepare(context.Background(), strings.NewReader("  \n "), "empty.txt", zap.NewNop()); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestPrepareCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Prepare(ctx, strings.NewReader("text"), "book.txt", zap.NewNop()); err == nil {
		t.Error("expected context error")
	}
}

func TestOpenZippedBook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.zip")

	zf, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zf)
	cover, _ := w.Create("cover.jpg")
	cover.Write([]byte("not really a jpeg"))
	entry, _ := w.Create("book.txt")
	entry.Write([]byte("# Zipped\n\nContent from inside the archive."))
	w.Close()
	zf.Close()

	c, err := Open(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.Title != "Zipped" || len(c.Blocks) != 2 {
		t.Errorf("opened %q with %d blocks", c.Title, len(c.Blocks))
	}
	if c.SrcName != path {
		t.Errorf("source = %q, want the archive path", c.SrcName)
	}
}

func TestOpenZipWithoutBook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.zip")

	zf, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zf)
	entry, _ := w.Create("cover.jpg")
	entry.Write([]byte("jpeg bytes"))
	w.Close()
	zf.Close()

	if _, err := Open(context.Background(), path, zap.NewNop()); err == nil {
		t.Error("expected error for an archive without a readable book")
	}
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("Paragraph in a bare file."), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(c.Blocks) != 1 {
		t.Errorf("blocks = %d", len(c.Blocks))
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), zap.NewNop()); err == nil {
		t.Error("expected error for a missing file")
	}
}
