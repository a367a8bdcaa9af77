package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("unable to create zip: %v", err)
	}
	w := zip.NewWriter(zf)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("unable to create entry %q: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("unable to write entry %q: %v", name, err)
		}
	}
	w.Close()
	zf.Close()
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"book.fb2":        "<FictionBook/>",
		"notes/plain.txt": "plain",
		"cover.jpg":       "jpeg",
		"checksum.md5":    "deadbeef",
	})

	cases := []struct {
		name string
		exts []string
		want int
	}{
		{"fb2 only", []string{".fb2"}, 1},
		{"fb2 and txt", []string{".fb2", ".txt"}, 2},
		{"case insensitive", []string{".FB2"}, 1},
		{"no match", []string{".epub"}, 0},
		{"everything", nil, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var visited int
			err := Walk(zipPath, c.exts, func(arc string, _ *zip.File) error {
				if arc != zipPath {
					t.Errorf("archive = %q, want %q", arc, zipPath)
				}
				visited++
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if visited != c.want {
				t.Errorf("visited %d entries, want %d", visited, c.want)
			}
		})
	}
}

func TestWalkStopsOnError(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})

	stop := errors.New("stop walking")
	var visited int
	err := Walk(zipPath, []string{".txt"}, func(_ string, _ *zip.File) error {
		visited++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Walk() error = %v, want %v", err, stop)
	}
	if visited != 1 {
		t.Errorf("visited %d entries after error, want 1", visited)
	}
}

func TestWalkSkipsDirectories(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "dirs.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("unable to create zip: %v", err)
	}
	w := zip.NewWriter(zf)
	hdr := &zip.FileHeader{Name: "books/"}
	hdr.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(hdr); err != nil {
		t.Fatalf("unable to create directory entry: %v", err)
	}
	fw, err := w.Create("books/one.txt")
	if err != nil {
		t.Fatalf("unable to create entry: %v", err)
	}
	fw.Write([]byte("text"))
	w.Close()
	zf.Close()

	var names []string
	if err := Walk(zipPath, nil, func(_ string, f *zip.File) error {
		names = append(names, f.Name)
		return nil
	}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(names) != 1 || names[0] != "books/one.txt" {
		t.Errorf("visited %v, want only the file entry", names)
	}
}

func TestWalkUnsafePath(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"../escape.txt": "nope",
	})

	err := Walk(zipPath, nil, func(_ string, _ *zip.File) error {
		t.Fatal("walkFn must not be called for unsafe entries")
		return nil
	})
	if err == nil {
		t.Fatal("expected error for traversing entry path")
	}
}

func TestWalkBadArchive(t *testing.T) {
	if err := Walk(filepath.Join(t.TempDir(), "missing.zip"), nil, nil); err == nil {
		t.Error("expected error for missing archive")
	}

	bad := filepath.Join(t.TempDir(), "bad.zip")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(bad, nil, nil); err == nil {
		t.Error("expected error for malformed archive")
	}
}
