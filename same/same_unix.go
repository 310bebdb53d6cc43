// same_unix.go - identity via (dev, ino), the cheap POSIX case
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

package same

import "syscall"

// same stats both paths and compares (dev, ino). A bare stat(2) never
// holds a handle open, so there is no simultaneity requirement here the
// way there is on Windows -- the kernel hands back a point-in-time
// (dev, ino) pair for each path independently and that pair is already
// the filesystem's definition of identity.
func same(a, b string) (bool, error) {
	var sa, sb syscall.Stat_t
	if err := syscall.Stat(a, &sa); err != nil {
		return false, err
	}
	if err := syscall.Stat(b, &sb); err != nil {
		return false, err
	}
	return uint64(sa.Dev) == uint64(sb.Dev) && sa.Ino == sb.Ino, nil
}

// SupportsDev reports whether this platform has a real (dev, ino) pair
// backing file identity -- true on every unix build (it is false on
// Windows and on the catch-all build for other platforms).
const SupportsDev = true
