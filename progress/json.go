package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// JSONStore keeps progress records in a single JSON file, one entry per
// book id. Simpler than the SQLite backend and trivially inspectable;
// selected through the storage.kind configuration knob.
type JSONStore struct {
	path            string
	pagesPerChapter int
	log             *zap.Logger
	data            map[string]*Record
}

// OpenJSON loads (or initializes) the JSON progress file at path. Entries
// in legacy shapes are converted on read and rewritten in the current shape
// on the next save.
func OpenJSON(path string, pagesPerChapter int, log *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create progress store directory: %w", err)
	}
	s := &JSONStore{
		path:            path,
		pagesPerChapter: pagesPerChapter,
		log:             log,
		data:            make(map[string]*Record),
	}
	if err := s.load(); err != nil {
		// non-fatal: better an empty store than no reading session
		log.Warn("Unable to load progress file, starting empty", zap.String("path", path), zap.Error(err))
		s.data = make(map[string]*Record)
	}
	return s, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	// decode entry by entry so a single legacy-shaped record does not take
	// down the whole file
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for id, msg := range raw {
		rec, err := decodeRecord(msg, s.pagesPerChapter)
		if err != nil {
			s.log.Warn("Dropping unreadable progress entry", zap.String("book", id), zap.Error(err))
			continue
		}
		rec.BookID = id
		s.data[id] = rec
	}
	return nil
}

func (s *JSONStore) Load(bookID string) (*Record, error) {
	rec, ok := s.data[bookID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *JSONStore) Save(rec *Record) error {
	if !rec.Valid() {
		return fmt.Errorf("refusing to save malformed progress record: %+v", rec)
	}
	cp := *rec
	cp.Version = RecordVersion
	s.data[rec.BookID] = &cp
	return s.flush()
}

func (s *JSONStore) List() ([]*Record, error) {
	recs := make([]*Record, 0, len(s.data))
	for _, rec := range s.data {
		cp := *rec
		recs = append(recs, &cp)
	}
	sortByTitle(recs)
	return recs, nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) flush() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal progress data: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("unable to write progress file: %w", err)
	}
	return nil
}
