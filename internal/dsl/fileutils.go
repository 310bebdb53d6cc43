// fileutils.go - utilities to make files and directories
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
	"fmt"
	"os"
	"path"
	"time"
)

// mkdir makes dn (and any missing intermediate dirs), then pins its
// mtime to tm so fixture trees are reproducible across runs.
func mkdir(dn string, tm time.Time) error {
	exists, err := DirExists(dn)
	if err != nil {
		return err
	}
	if !exists {
		if err = os.MkdirAll(dn, 0700); err != nil {
			return err
		}
	}
	return os.Chtimes(dn, tm, tm)
}

// mkfile creates a new file at fn of exactly size bytes of random
// content, creating any missing parent directories first.
func mkfile(fn string, size int64, tm time.Time) error {
	if err := mkdir(path.Dir(fn), tm); err != nil {
		return fmt.Errorf("mkdir %s: %w", path.Dir(fn), err)
	}

	fd, err := os.OpenFile(fn, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer fd.Close()

	const chunkSize int64 = 65536
	for size > 0 {
		sz := min(size, chunkSize)
		n, err := fd.Write(randBuf(sz))
		if err != nil {
			return err
		}
		size -= int64(n)
	}

	if err = fd.Sync(); err != nil {
		return err
	}
	if err = fd.Close(); err != nil {
		return err
	}
	return os.Chtimes(fn, tm, tm)
}
