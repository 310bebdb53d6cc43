// xattr.go - extended attribute support
//
// (c) 2023- Sudhi Herle <sudhi@herle.net>
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
	"strings"

	"github.com/pkg/xattr"
)

// Xattr is a collection of all the extended attributes of a given file.
type Xattr map[string]string

// String returns the string representation of all the extended attributes
func (x Xattr) String() string {
	var s strings.Builder
	for k, v := range x {
		s.WriteString(fmt.Sprintf("%s=%s\n", k, v))
	}
	return s.String()
}

// Equal returns true if x and y carry the same set of extended
// attributes.
func (x Xattr) Equal(y Xattr) bool {
	if len(x) != len(y) {
		return false
	}
	for k, a := range x {
		if b, ok := y[k]; !ok || a != b {
			return false
		}
	}
	return true
}

// getXattr returns all the extended attributes of a file, following
// symlinks. Platforms (and file systems) that don't support extended
// attributes yield an empty, non-nil Xattr rather than an error.
func getXattr(nm string) (Xattr, error) {
	return fetchXattr(nm, xattr.List, xattr.Get)
}

// lgetXattr is like getXattr but does not follow a trailing symlink.
func lgetXattr(nm string) (Xattr, error) {
	return fetchXattr(nm, xattr.LList, xattr.LGet)
}

func fetchXattr(nm string, list func(nm string) ([]string, error),
	get func(nm string, k string) ([]byte, error)) (Xattr, error) {

	// Extended attributes are best-effort metadata enrichment: a file
	// system (or platform) that doesn't support them yields an empty
	// set rather than failing the whole stat.
	keys, err := list(nm)
	if err != nil {
		return Xattr{}, nil
	}

	x := make(Xattr, len(keys))
	for _, k := range keys {
		b, err := get(nm, k)
		if err != nil {
			return nil, err
		}
		x[k] = string(b)
	}
	return x, nil
}
