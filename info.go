// info.go - a better fs.FileInfo that also carries xattr
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
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// Info is the metadata returned by Entry.Metadata(). It satisfies
// fs.FileInfo and, following stat(2), also carries the file's extended
// attributes and its (dev, ino) pair.
type Info struct {
	Ino  uint64
	Siz  int64
	Dev  uint64
	Rdev uint64

	Mod   fs.FileMode
	Uid   uint32
	Gid   uint32
	Nlink uint32

	Atim time.Time
	Mtim time.Time
	Ctim time.Time

	path  string
	Xattr Xattr
}

var _ fs.FileInfo = &Info{}

// Stat is like os.Stat but also fetches extended attributes; it follows
// symlinks.
func Stat(nm string) (*Info, error) {
	var ii Info
	if err := statm(nm, &ii); err != nil {
		return nil, err
	}
	return &ii, nil
}

// Lstat is like os.Lstat but also fetches extended attributes; it does
// not follow a symlink named by nm.
func Lstat(nm string) (*Info, error) {
	var ii Info
	if err := lstatm(nm, &ii); err != nil {
		return nil, err
	}
	return &ii, nil
}

// String is a string representation of Info
func (ii *Info) String() string {
	return fmt.Sprintf("%s: %d %d; %s; %s", ii.Name(), ii.Siz, ii.Nlink, ii.ModTime().UTC(), ii.Mode().String())
}

// Path returns the path this Info was fetched for.
func (ii *Info) Path() string {
	return ii.path
}

// Name satisfies fs.FileInfo and returns the basename of the fs entry.
func (ii *Info) Name() string {
	return filepath.Base(ii.path)
}

// Size returns the fs entry's size
func (ii *Info) Size() int64 {
	return ii.Siz
}

// Mode returns the file mode bits
func (ii *Info) Mode() fs.FileMode {
	return ii.Mod
}

// ModTime returns the file modification time
func (ii *Info) ModTime() time.Time {
	return ii.Mtim
}

// IsDir returns true if this Info represents a directory entry
func (ii *Info) IsDir() bool {
	return ii.Mode().IsDir()
}

// IsRegular returns true if this Info represents a regular file
func (ii *Info) IsRegular() bool {
	return ii.Mode().IsRegular()
}

// IsSameFS returns true if ii and jj are on the same device as each
// other.
func (ii *Info) IsSameFS(jj *Info) bool {
	return ii.Dev == jj.Dev
}

// Sys returns the platform specific info -- in our case, a pointer back
// to this same Info instance.
func (ii *Info) Sys() any {
	return ii
}
