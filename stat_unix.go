// stat_unix.go - stat(2)/lstat(2) based Info construction for unix-like systems
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

//go:build unix

package walk

import (
	"io/fs"
	"syscall"
)

// statm fetches Info for nm, following a trailing symlink.
func statm(nm string, fi *Info) error {
	var st syscall.Stat_t
	if err := syscall.Stat(nm, &st); err != nil {
		return err
	}

	x, err := getXattr(nm)
	if err != nil {
		return err
	}

	fillInfo(fi, nm, &st, x)
	return nil
}

// applyModeBits translates a raw st_mode into fs.FileMode bits; shared
// across the per-GOOS fillInfo implementations since the S_IF*/S_IS*
// constants agree in value across unix flavors even though Stat_t.Mode's
// width does not.
func applyModeBits(fi *Info, mode uint32) {
	switch mode & syscall.S_IFMT {
	case syscall.S_IFBLK:
		fi.Mod |= fs.ModeDevice
	case syscall.S_IFCHR:
		fi.Mod |= fs.ModeDevice | fs.ModeCharDevice
	case syscall.S_IFDIR:
		fi.Mod |= fs.ModeDir
	case syscall.S_IFIFO:
		fi.Mod |= fs.ModeNamedPipe
	case syscall.S_IFLNK:
		fi.Mod |= fs.ModeSymlink
	case syscall.S_IFREG:
		// nothing to do
	case syscall.S_IFSOCK:
		fi.Mod |= fs.ModeSocket
	}
	if mode&syscall.S_ISGID != 0 {
		fi.Mod |= fs.ModeSetgid
	}
	if mode&syscall.S_ISUID != 0 {
		fi.Mod |= fs.ModeSetuid
	}
	if mode&syscall.S_ISVTX != 0 {
		fi.Mod |= fs.ModeSticky
	}
}

// lstatm fetches Info for nm without following a trailing symlink.
func lstatm(nm string, fi *Info) error {
	var st syscall.Stat_t
	if err := syscall.Lstat(nm, &st); err != nil {
		return err
	}

	x, err := lgetXattr(nm)
	if err != nil {
		return err
	}

	fillInfo(fi, nm, &st, x)
	return nil
}
