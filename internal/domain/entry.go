package domain

import (
	"sort"
	"strings"
	"time"
)

// EntryKind represents the type of a directory entry
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
	EntrySymlink
)

// DirectoryEntry represents one row of a directory listing.
// Entries are produced fresh on every load and never mutated in place;
// a rename or move is observed by re-listing the parent.
type DirectoryEntry struct {
	// Name is the base name of the entry
	Name string

	// Path is the full addressable path string in wire format: a host-OS
	// path for local entries, "remote:<endpoint>:<path>" for remote ones
	Path string

	// Kind indicates file, directory, or symlink
	Kind EntryKind

	// Size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time (zero when the backend
	// does not report one)
	ModTime time.Time
}

// IsDir returns true if this entry is a directory
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == EntryDirectory
}

// IsHidden reports whether the entry follows the hidden-file naming
// convention (dot prefix)
func (e DirectoryEntry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// SortEntries orders a listing directories-first, then by case-insensitive
// name. This is the order the UI presents and the order selection indexes
// into; the selection controller itself never re-sorts.
func SortEntries(entries []DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
