// Package progress persists per-book reading positions on the local device.
// Durability is best effort: reading works purely in memory for the session
// when the store is unavailable, so every caller logs and swallows errors.
package progress

import "encoding/json"

// RecordVersion is the current progress record shape version.
const RecordVersion = "4.0"

// Record is a durable reading position for one book on this device.
type Record struct {
	Version   string `json:"version"`
	BookID    string `json:"bookId"`
	Chapter   int    `json:"chapterIndex"`
	Page      int    `json:"pageIndex"`
	Timestamp int64  `json:"timestamp"`
	Title     string `json:"title,omitempty"`
}

// Valid reports whether the record is well-formed enough to act on. Range
// checking against a concrete book happens later - here only the shape
// matters.
func (r *Record) Valid() bool {
	return r != nil && r.BookID != "" && r.Chapter >= 0 && r.Page >= 0
}

// legacyRecord is the pre-4.0 shape: a raw global page number plus the page
// count the book had when it was saved. Still found in old state files and
// must be tolerated, not rejected.
type legacyRecord struct {
	BookID     string `json:"bookId"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Timestamp  int64  `json:"timestamp"`
	Title      string `json:"title,omitempty"`
}

// convert approximates a legacy global page number as a locator. Chapter
// size may have changed since the record was written, so the result is only
// a neighborhood - the coordinator clamps it against the real book anyway.
func (l *legacyRecord) convert(pagesPerChapter int) *Record {
	if pagesPerChapter <= 0 {
		pagesPerChapter = 5
	}
	page := l.Page
	if page < 0 {
		page = 0
	}
	return &Record{
		Version:   RecordVersion,
		BookID:    l.BookID,
		Chapter:   page / pagesPerChapter,
		Page:      page % pagesPerChapter,
		Timestamp: l.Timestamp,
		Title:     l.Title,
	}
}

// decodeRecord accepts either the current or the legacy JSON shape.
func decodeRecord(data []byte, pagesPerChapter int) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Version == RecordVersion {
		return &rec, nil
	}
	var old legacyRecord
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, err
	}
	return old.convert(pagesPerChapter), nil
}
