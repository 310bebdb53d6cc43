// stat_other.go - fallback Info construction for unsupported platforms
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

//go:build !unix && !windows

package walk

import (
	"os"
)

func statm(nm string, fi *Info) error {
	st, err := os.Stat(nm)
	if err != nil {
		return err
	}
	return fillInfoGeneric(fi, nm, st)
}

func lstatm(nm string, fi *Info) error {
	st, err := os.Lstat(nm)
	if err != nil {
		return err
	}
	return fillInfoGeneric(fi, nm, st)
}

func fillInfoGeneric(fi *Info, nm string, st os.FileInfo) error {
	*fi = Info{
		Siz:   st.Size(),
		Mod:   st.Mode(),
		Atim:  st.ModTime(),
		Mtim:  st.ModTime(),
		Ctim:  st.ModTime(),
		path:  nm,
		Xattr: Xattr{},
	}
	return nil
}
