// listing.go - one directory's unconsumed entries
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
	"errors"
	"io"
	"io/fs"
	"os"
)

// rawEntry is what the platform directory-listing primitive hands back
// for a single name: a type hint cheap enough to come along with the
// listing itself (no stat required), resolved lazily by the state
// machine only when the hint can't settle the question on its own.
type rawEntry struct {
	name    string
	hasHint bool
	hint    FileType
	err     error // non-nil iff reading this entry itself failed
}

// result is a promoted rawEntry: either a finished Entry or the error
// that replaces it in the output sequence. Buffering a Closed listing
// stores these directly so draining never re-touches the filesystem.
type result struct {
	entry *Entry
	err   error
}

// listing is one stack slot: a directory's unconsumed entries, either
// backed by a live OS handle (open) or a drained in-memory queue
// (closed). Both states expose the same next() operation so the state
// machine above never needs to know which one it holds.
type listing struct {
	parentDepth int // depth of the directory that owns this listing; children are parentDepth+1
	dirPath     string

	open bool
	f    *os.File // nil once closed

	// openErr is a deferred error from the os.Open call itself; it
	// must be surfaced exactly once, as the listing's first "entry".
	openErr error
	errDone bool

	// buffer holds the remaining entries once open is false, in the
	// order they must still be yielded.
	buffer []result
	bufPos int
}

// openListing opens dirPath for reading. Failure is not returned to the
// caller directly: it is captured inside a still-valid, open=false
// listing so the state machine observes it in sequence via next(),
// exactly like any other per-entry error.
func openListing(dirPath string, parentDepth int) *listing {
	f, err := os.Open(dirPath)
	if err != nil {
		return &listing{parentDepth: parentDepth, dirPath: dirPath, open: false, openErr: err}
	}
	return &listing{parentDepth: parentDepth, dirPath: dirPath, open: true, f: f}
}

func hintOf(de fs.DirEntry) (FileType, bool) {
	switch {
	case de.Type()&fs.ModeSymlink != 0:
		return Symlink, true
	case de.IsDir():
		return Directory, true
	case de.Type().IsRegular():
		return Regular, true
	case de.Type() == 0:
		return Regular, true
	default:
		// unknown/irregular mode bits (device, socket, etc.) -- the
		// hint is usable, no stat needed to classify as Other.
		return Other, true
	}
}

// next pulls the next raw entry from the listing, reading from the OS
// if open, or from the buffer otherwise. A zero rawEntry with ok=false
// means the listing is exhausted.
func (l *listing) next() (rawEntry, bool) {
	if !l.errDone {
		l.errDone = true
		if l.openErr != nil {
			return rawEntry{err: l.openErr}, true
		}
	}

	if !l.open {
		return l.nextBuffered()
	}

	des, err := l.f.ReadDir(1)
	if len(des) == 0 {
		l.close()
		if err != nil && !errors.Is(err, io.EOF) {
			return rawEntry{err: err}, true
		}
		return rawEntry{}, false
	}
	hint, ok := hintOf(des[0])
	return rawEntry{name: des[0].Name(), hint: hint, hasHint: ok}, true
}

// nextBuffered is only reachable once the listing has been drained,
// either because the handle cap forced it or because a sort_by
// ordering required an eager read.
func (l *listing) nextBuffered() (rawEntry, bool) {
	if l.bufPos >= len(l.buffer) {
		return rawEntry{}, false
	}
	r := l.buffer[l.bufPos]
	l.bufPos++
	if r.err != nil {
		return rawEntry{err: r.err}, true
	}
	return rawEntry{name: r.entry.FileName(), hint: r.entry.typ, hasHint: true}, true
}

// close releases the underlying OS resource, if any, without
// touching the open/closed bookkeeping the state machine relies on.
// Safe to call multiple times.
func (l *listing) close() {
	if l.f != nil {
		l.f.Close()
		l.f = nil
	}
}

// drain transitions an Open listing to Closed, reading every remaining
// raw name and promoting it through promote, preserving order. Any
// error encountered while reading is buffered at its original position.
// drain only acts on a listing that is still Open; calling it on a
// Closed listing (including a second call) is a no-op that leaves the
// existing buffer untouched.
func (l *listing) drain(promote func(rawEntry) result) {
	if !l.open {
		return
	}
	var buf []result
	if !l.errDone {
		l.errDone = true
		if l.openErr != nil {
			buf = append(buf, result{err: l.openErr})
		}
	}
	if l.f != nil {
		for {
			des, err := l.f.ReadDir(64)
			for _, de := range des {
				hint, _ := hintOf(de)
				buf = append(buf, promote(rawEntry{name: de.Name(), hint: hint, hasHint: true}))
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					buf = append(buf, result{err: err})
				}
				break
			}
			if len(des) == 0 {
				break
			}
		}
	}
	l.close()
	l.open = false
	l.buffer = buf
	l.bufPos = 0
}

// isOpen reports whether this listing still holds a live OS handle.
func (l *listing) isOpen() bool { return l.open }
