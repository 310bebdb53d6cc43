// typehelp.go - small stat-backed helpers shared by the state machine
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
	"errors"
	"io/fs"
)

// errUnsupportedDev is yielded once, on first advance, when
// SameFileSystem is requested on a platform that cannot report device
// numbers -- surfaced rather than silently ignored, per the design
// note on same-file-system on unsupported platforms.
var errUnsupportedDev = errors.New("walk: device identity not supported on this platform")

// statResult is the subset of Info that classify needs after following
// a link or re-statting for an inode, kept small so callers don't need
// the whole Info allocation.
type statResult struct {
	typ    FileType
	ino    uint64
	hasIno bool
}

// lstatFileType resolves a path's type via lstat(2), used when the
// listing's own type hint was unusable and to tell whether the root
// path itself is a symlink.
func lstatFileType(path string) (FileType, error) {
	var fi Info
	if err := lstatm(path, &fi); err != nil {
		return Other, err
	}
	if fi.Mod&fs.ModeSymlink != 0 {
		return Symlink, nil
	}
	if fi.IsDir() {
		return Directory, nil
	}
	if fi.IsRegular() {
		return Regular, nil
	}
	return Other, nil
}

// statTarget follows a symlink (stat, not lstat) to classify and
// identify its target -- the one stat call step (f) of the advance
// algorithm spends on a followed link.
func statTarget(path string) (statResult, error) {
	var fi Info
	if err := statm(path, &fi); err != nil {
		return statResult{}, err
	}
	r := statResult{hasIno: fi.Ino != 0, ino: fi.Ino}
	switch {
	case fi.IsDir():
		r.typ = Directory
	case fi.IsRegular():
		r.typ = Regular
	default:
		r.typ = Other
	}
	return r, nil
}

// lstatIno fetches just the inode identity of path without following a
// trailing symlink, used to populate Entry.Ino for every entry that is
// not a followed symlink.
func lstatIno(path string) (statResult, error) {
	var fi Info
	if err := lstatm(path, &fi); err != nil {
		return statResult{}, err
	}
	return statResult{hasIno: fi.Ino != 0, ino: fi.Ino}, nil
}
