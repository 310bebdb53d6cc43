// entry.go - the per-file value yielded by an Iterator
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package walk

import (
	"path/filepath"
)

// FileType classifies a directory entry without requiring a second
// stat(2) once the listing already told us.
type FileType uint8

const (
	// Regular is a plain file.
	Regular FileType = iota
	// Directory is, well, a directory.
	Directory
	// Symlink is a symbolic link (never true when FollowLinks is on
	// and the link resolved cleanly -- see Entry.FollowLink).
	Symlink
	// Other is a device, socket, named pipe or anything else.
	Other
)

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is an immutable record of one filesystem entry observed during a
// traversal. It is cheap to copy except for its path string.
type Entry struct {
	path       string
	typ        FileType
	depth      int
	followLink bool
	rawLink    bool // true iff the raw directory entry itself was a symlink

	hasIno bool
	ino    uint64
}

// Path returns the path of this entry, as the root path joined with the
// names of every intermediate directory and this entry's own name.
func (e *Entry) Path() string { return e.path }

// FileName returns the final component of Path, or the whole path if it
// has no separator (this is always the case for the root entry when the
// root was given as a bare name like "." or "foo").
func (e *Entry) FileName() string {
	return filepath.Base(e.path)
}

// FileType returns the classification of this entry. When FollowLink is
// true, this reflects the link's target, never the link itself.
func (e *Entry) FileType() FileType { return e.typ }

// Depth returns the depth of this entry relative to the root (which is
// depth 0).
func (e *Entry) Depth() int { return e.depth }

// FollowLink reports whether this record was produced by resolving a
// symbolic link -- i.e. whether FileType reflects the link's target
// rather than the link itself.
func (e *Entry) FollowLink() bool { return e.followLink }

// PathIsSymbolicLink reports whether the raw directory entry is itself a
// symlink -- true whether or not FollowLinks was enabled, unlike
// FileType which, when FollowLink is true, already reports the target's
// type.
func (e *Entry) PathIsSymbolicLink() bool {
	return e.rawLink
}

// Metadata fetches this entry's stat(2) information (and extended
// attributes), following the link iff FollowLink is true. Errors are
// wrapped with this entry's path and depth.
func (e *Entry) Metadata() (*Info, error) {
	var fi Info
	var err error
	if e.followLink {
		err = statm(e.path, &fi)
	} else {
		err = lstatm(e.path, &fi)
	}
	if err != nil {
		return nil, pathErr("stat", e.path, e.depth, err)
	}
	return &fi, nil
}

// Ino returns the entry's file serial number on POSIX-like platforms,
// for callers doing their own external equality checks (e.g. detecting
// hard links across two Entry values without re-stating either path).
// ok is false on platforms or entry types where no inode was resolved.
func (e *Entry) Ino() (ino uint64, ok bool) {
	return e.ino, e.hasIno
}
