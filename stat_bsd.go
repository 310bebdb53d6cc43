// stat_bsd.go - syscall.Stat_t to Info, darwin/freebsd flavor
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

//go:build darwin || freebsd

package walk

import (
	"io/fs"
	"syscall"
	"time"
)

func fillInfo(fi *Info, nm string, st *syscall.Stat_t, x Xattr) {
	*fi = Info{
		Ino:   st.Ino,
		Siz:   st.Size,
		Dev:   uint64(st.Dev),
		Rdev:  uint64(st.Rdev),
		Mod:   fs.FileMode(st.Mode & 0777),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Nlink: uint32(st.Nlink),
		Atim:  time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		Mtim:  time.Unix(st.Mtimespec.Sec, st.Mtimespec.Nsec),
		Ctim:  time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec),
		path:  nm,
		Xattr: x,
	}
	applyModeBits(fi, uint32(st.Mode))
}
