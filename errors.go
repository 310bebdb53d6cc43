// errors.go - descriptive errors for walk
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
)

// PathError is an IO error the walker can attribute to a single path: a
// failed open, stat or readdir. It carries the depth at which the
// failure happened so callers can tell root-level failures from deeply
// nested ones.
type PathError struct {
	Op   string
	Path string
	Dep  int
	Err  error
}

// Error returns a string representation of PathError
func (e *PathError) Error() string {
	return fmt.Sprintf("walk: %s %q: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying wrapped error
func (e *PathError) Unwrap() error { return e.Err }

// Depth returns the traversal depth at which this error occurred.
func (e *PathError) Depth() int { return e.Dep }

var _ error = &PathError{}

// NoPathError is an IO error that cannot be attributed to a single path,
// e.g. a failure inside the identity oracle while comparing a followed
// link against its ancestors during cycle detection.
type NoPathError struct {
	Op  string
	Dep int
	Err error
}

// Error returns a string representation of NoPathError
func (e *NoPathError) Error() string {
	return fmt.Sprintf("walk: %s: %s", e.Op, e.Err)
}

// Unwrap returns the underlying wrapped error
func (e *NoPathError) Unwrap() error { return e.Err }

// Depth returns the traversal depth at which this error occurred.
func (e *NoPathError) Depth() int { return e.Dep }

var _ error = &NoPathError{}

// LoopError indicates that following a symbolic link would re-enter one
// of its own ancestor directories.
type LoopError struct {
	Ancestor string
	Child    string
	Dep      int
}

// Error returns a string representation of LoopError
func (e *LoopError) Error() string {
	return fmt.Sprintf("walk: file system loop: %q points back to ancestor %q", e.Child, e.Ancestor)
}

// Depth returns the traversal depth at which the loop was detected.
func (e *LoopError) Depth() int { return e.Dep }

var _ error = &LoopError{}

// pathErr wraps err with op/path/depth, unless err already carries its
// own depth (a *PathError, *NoPathError or *LoopError bubbling up from
// a lower layer), in which case it is returned unchanged.
func pathErr(op, path string, depth int, err error) error {
	switch err.(type) {
	case *PathError, *NoPathError, *LoopError:
		return err
	}
	return &PathError{Op: op, Path: path, Dep: depth, Err: err}
}
