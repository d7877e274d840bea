// Package filesystem implements ports.FileSource over the local disk
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/google/uuid"

	"desksweep/internal/debug"
	"desksweep/internal/domain"
)

// fingerprintLimit bounds how much of each file is read for the
// content-equality signal. Equal size plus an equal leading-chunk hash is
// treated as identical content.
const fingerprintLimit = 64 * 1024

// Source enumerates one directory level and yields classified file records
type Source struct {
	// Fingerprint can be disabled for very large folders where reading the
	// leading chunk of every file is too slow.
	Fingerprint bool
}

// NewSource creates a filesystem source with fingerprinting enabled
func NewSource() *Source {
	return &Source{Fingerprint: true}
}

// Enumerate walks the immediate children of location, excluding hidden and
// system entries. Sizes and fingerprints are best-effort: an unreadable
// entry yields a zero size, never an error. Records come back in name order
// so sessions over the same folder traverse it the same way.
func (s *Source) Enumerate(location string) ([]domain.FileRecord, error) {
	root, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(root); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var (
		mu      sync.Mutex
		records []domain.FileRecord
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.SCAN, "skipping %s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if isHidden(name) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		rec := domain.FileRecord{
			ID:   domain.FileID(uuid.NewString()),
			Path: path,
			Name: name,
		}
		if d.IsDir() {
			rec.Type = domain.FileTypeFolder
		} else {
			rec.Type = domain.ClassifyName(name)
		}
		if info, err := d.Info(); err == nil {
			rec.Size = info.Size()
			rec.CreatedAt = createdAt(info)
		}
		if s.Fingerprint && !d.IsDir() && rec.Size > 0 {
			rec.Fingerprint = fingerprint(path)
		}

		mu.Lock()
		records = append(records, rec)
		mu.Unlock()

		if d.IsDir() {
			// One level only: folders are triaged as units, not descended.
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	debug.Log(debug.SCAN, "enumerated %d entries under %s", len(records), root)
	return records, nil
}

// isHidden excludes dotfiles and the usual desktop system droppings
func isHidden(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "Thumbs.db", "desktop.ini", "$RECYCLE.BIN", "System Volume Information":
		return true
	}
	return false
}

// fingerprint hashes the leading chunk of the file. Empty on any read
// failure; duplicate detection then simply never matches this file.
func fingerprint(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, io.LimitReader(f, fingerprintLimit)); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

// createdAt is best-effort: portable stat has no birth time, so the
// modification time stands in for creation
func createdAt(info fs.FileInfo) time.Time {
	return info.ModTime()
}
