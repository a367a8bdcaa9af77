package progress

import "fmt"

// MemoryStore is the fallback when no durable backend is available: the
// session keeps its position, nothing survives it.
type MemoryStore struct {
	data map[string]*Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Record)}
}

func (s *MemoryStore) Load(bookID string) (*Record, error) {
	rec, ok := s.data[bookID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Save(rec *Record) error {
	if !rec.Valid() {
		return fmt.Errorf("refusing to save malformed progress record: %+v", rec)
	}
	cp := *rec
	s.data[rec.BookID] = &cp
	return nil
}

func (s *MemoryStore) List() ([]*Record, error) {
	recs := make([]*Record, 0, len(s.data))
	for _, rec := range s.data {
		cp := *rec
		recs = append(recs, &cp)
	}
	sortByTitle(recs)
	return recs, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
