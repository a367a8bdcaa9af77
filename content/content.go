// Package content extracts the flat, ordered block sequence the pager
// consumes from a book source: FB2-subset XML (bare or zipped) or plain
// text. Extraction happens once per book-open; the resulting blocks are
// immutable for the session.
package content

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"leaf/archive"
	"leaf/content/text"
)

// Content is the extracted, session-immutable representation of a book.
type Content struct {
	SrcName string
	BookID  string
	Title   string
	Lang    language.Tag
	Blocks  []*Block

	Splitter *text.Splitter

	Words     int
	Sentences int
}

// Open reads a book from disk. Zip archives are searched for the first
// usable entry (old libraries routinely ship books zipped one per archive).
func Open(ctx context.Context, path string, log *zap.Logger) (*Content, error) {
	if looksLikeZip(path) {
		var result *Content
		err := archive.Walk(path, bookExts, func(_ string, f *zip.File) error {
			if result != nil {
				return nil
			}
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("unable to open zip entry %q: %w", f.Name, err)
			}
			defer rc.Close()
			result, err = Prepare(ctx, rc, f.Name, log)
			return err
		})
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("no readable book entry found in %q", path)
		}
		result.SrcName = path
		return result, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open book: %w", err)
	}
	defer f.Close()
	return Prepare(ctx, f, path, log)
}

// Prepare reads and parses book content from a reader. The source format is
// detected from the payload, not the name: anything starting with an XML
// declaration or a tag is treated as FB2-subset XML, the rest as plain text.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read book source: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("book source %q is empty", srcName)
	}

	var c *Content
	if looksLikeXML(data) {
		c, err = parseBookXML(data, srcName, log)
	} else {
		c, err = parsePlainText(data, srcName, log)
	}
	if err != nil {
		return nil, err
	}

	// Make sure book ID is not empty and is a valid UUID - progress records
	// and shareable links key on it.
	if _, err := uuid.Parse(c.BookID); err != nil {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("leaf:"+c.Title+":"+srcName))
		if len(c.BookID) > 0 {
			log.Debug("Book ID is not a valid UUID, deriving a stable one", zap.String("id", c.BookID), zap.String("derived", id.String()))
		}
		c.BookID = id.String()
	}
	if len(c.Title) == 0 {
		c.Title = strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	}

	c.Splitter = text.NewSplitter(c.Lang, log)
	for _, b := range c.Blocks {
		c.Words += b.Words
		c.Sentences += c.Splitter.SentenceCount(b.Text)
	}

	log.Debug("Book content prepared",
		zap.String("source", srcName),
		zap.String("id", c.BookID),
		zap.String("title", c.Title),
		zap.Int("blocks", len(c.Blocks)),
		zap.Int("words", c.Words))
	return c, nil
}

func looksLikeZip(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return strings.EqualFold(filepath.Ext(path), ".zip")
	}
	defer f.Close()
	var sig [4]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil {
		return false
	}
	return bytes.Equal(sig[:], []byte("PK\x03\x04"))
}

func looksLikeXML(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// bookExts lists zip entry extensions worth opening as a book.
var bookExts = []string{".fb2", ".xml", ".txt"}
