package progress

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
)

// Store is the durable per-device progress store, keyed by book id.
// Load returns (nil, nil) when no record exists for the book.
type Store interface {
	Load(bookID string) (*Record, error)
	Save(rec *Record) error
	List() ([]*Record, error)
	Close() error
}

// StateDir resolves the per-user state directory for the application,
// honoring XDG_STATE_HOME.
func StateDir(appName string) string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".local", "state", appName)
}

// sortByTitle orders records for display: natural order on titles so
// "Book 2" sorts before "Book 10", book id as tie-breaker.
func sortByTitle(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Title != recs[j].Title {
			return natural.Less(recs[i].Title, recs[j].Title)
		}
		return recs[i].BookID < recs[j].BookID
	})
}
