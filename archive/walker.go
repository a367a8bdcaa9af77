// Package archive iterates book entries inside zip containers. Old book
// libraries routinely distribute texts zipped one file per archive, often
// with junk alongside (covers, checksums, readme files), so selection is
// by extension rather than by entry path.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is called for each selected entry. The archive argument is the
// container path passed to Walk, file is the matched entry. Returning an
// error stops the walk and propagates it to the caller.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits every regular file in the archive whose extension is in exts
// (case-insensitive, with leading dot). An empty exts selects everything.
// Entries with absolute or traversing paths fail the walk outright.
func Walk(archive string, exts []string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !matchExt(name, exts) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func matchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
