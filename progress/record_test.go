package progress

import "testing"

func TestRecordValid(t *testing.T) {
	cases := []struct {
		name string
		rec  *Record
		want bool
	}{
		{"nil", nil, false},
		{"ok", &Record{BookID: "b1", Chapter: 0, Page: 0}, true},
		{"no book id", &Record{Chapter: 1, Page: 1}, false},
		{"negative chapter", &Record{BookID: "b1", Chapter: -1}, false},
		{"negative page", &Record{BookID: "b1", Page: -1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.rec.Valid(); got != c.want {
				t.Errorf("Valid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLegacyConvert(t *testing.T) {
	cases := []struct {
		name            string
		page            int
		pagesPerChapter int
		wantChapter     int
		wantPage        int
	}{
		{"page 12 of 5 per chapter", 12, 5, 2, 2},
		{"exact boundary", 10, 5, 2, 0},
		{"first page", 0, 5, 0, 0},
		{"zero divisor falls back", 12, 0, 2, 2},
		{"negative page clamps", -3, 5, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			old := legacyRecord{BookID: "b1", Page: c.page, Timestamp: 7, Title: "T"}
			rec := old.convert(c.pagesPerChapter)
			if rec.Chapter != c.wantChapter || rec.Page != c.wantPage {
				t.Errorf("convert() = (%d,%d), want (%d,%d)", rec.Chapter, rec.Page, c.wantChapter, c.wantPage)
			}
			if rec.Version != RecordVersion || rec.BookID != "b1" || rec.Timestamp != 7 || rec.Title != "T" {
				t.Errorf("convert() lost fields: %+v", rec)
			}
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	current := []byte(`{"version":"4.0","bookId":"b1","chapterIndex":2,"pageIndex":1,"timestamp":5}`)
	rec, err := decodeRecord(current, 5)
	if err != nil {
		t.Fatalf("decodeRecord() error = %v", err)
	}
	if rec.Chapter != 2 || rec.Page != 1 {
		t.Errorf("current shape decoded as %+v", rec)
	}

	legacy := []byte(`{"bookId":"b1","page":12,"totalPages":200,"timestamp":5}`)
	rec, err = decodeRecord(legacy, 5)
	if err != nil {
		t.Fatalf("decodeRecord() error = %v", err)
	}
	if rec.Version != RecordVersion || rec.Chapter != 2 || rec.Page != 2 {
		t.Errorf("legacy shape decoded as %+v, want converted locator", rec)
	}

	if _, err := decodeRecord([]byte(`[1,2]`), 5); err == nil {
		t.Error("expected error for non-object payload")
	}
}
