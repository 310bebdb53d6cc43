// stat_windows.go - Info construction for Windows
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

//go:build windows

package walk

import (
	"io/fs"
	"os"
)

// Windows has no syscall.Stat_t dev/ino pair; the identity oracle (see
// package same) instead compares the volume serial number and file
// index obtained by keeping two file handles open simultaneously. Info
// on Windows therefore always reports Dev == Ino == 0 and
// Builder.SameFileSystem is unsupported (see same.SupportsDev).
func statm(nm string, fi *Info) error {
	st, err := os.Stat(nm)
	if err != nil {
		return err
	}
	fillInfoWindows(fi, nm, st)
	return nil
}

func lstatm(nm string, fi *Info) error {
	st, err := os.Lstat(nm)
	if err != nil {
		return err
	}
	fillInfoWindows(fi, nm, st)
	return nil
}

func fillInfoWindows(fi *Info, nm string, st fs.FileInfo) {
	*fi = Info{
		Siz:   st.Size(),
		Mod:   st.Mode(),
		Atim:  st.ModTime(),
		Mtim:  st.ModTime(),
		Ctim:  st.ModTime(),
		path:  nm,
		Xattr: Xattr{},
	}
}
