// exists.go - handy checks for file/dir existence
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

package dsl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirExists reports whether dn exists and is a directory.
func DirExists(dn string) (bool, error) {
	st, err := os.Lstat(dn)
	if err == nil {
		if st.Mode().IsDir() {
			return true, nil
		}
		return false, fmt.Errorf("%s: entry exists but not a dir", dn)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("DirExists: lstat %w", err)
}

// FileExists reports whether dn exists and is a regular file.
func FileExists(dn string) (bool, error) {
	st, err := os.Lstat(dn)
	if err == nil {
		if st.Mode().IsRegular() {
			return true, nil
		}
		return false, fmt.Errorf("%s: entry exists but not a file", dn)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("FileExists: lstat %w", err)
}
