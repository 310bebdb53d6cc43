// state.go - the streaming traversal state machine, component D
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
	"path/filepath"
	"sort"

	"github.com/opencoff/go-logger"
	"github.com/opencoff/go-walk/same"
)

type machineState uint8

const (
	stateUnstarted machineState = iota
	stateDescending
	stateExhausted
)

// FilterFunc decides whether an entry should be emitted and, if it is a
// directory, descended into. Returning false on a directory both drops
// its record and cancels its subtree, exactly like SkipCurrentDir
// called immediately after the entry was produced.
type FilterFunc func(*Entry) bool

// deferredDir is a directory record held back for post-order emission
// until its listing (and everything nested under it) has drained.
type deferredDir struct {
	entry *Entry
	depth int
}

// Iterator is the traversal state machine: a stack of listing handles,
// open-handle accounting, the ancestor path stack used for cycle
// detection, and the post-order deferral queue. It is single-threaded:
// an Iterator must be owned by exactly one goroutine at a time, though
// distinct Iterators may run concurrently on disjoint goroutines (see
// package walkpool for exactly that fan-out).
type Iterator struct {
	root string

	followLinks    bool
	maxOpen        int
	minDepth       int
	maxDepth       int
	sortBy         CompareFunc
	contentsFirst  bool
	sameFileSystem bool
	log            logger.Logger

	filter FilterFunc

	state   machineState
	rootDev uint64

	stack      []*listing
	pathStack  []string // parallel to stack, only meaningful when followLinks
	oldestOpen int

	deferred []deferredDir // one slot per stack depth that has post-order pending

	skipRequested bool
}

// FilterEntry installs an adapter: fn is consulted for every would-be
// record not already suppressed by the depth window; a false result
// drops the record and, for a directory, cancels descent into it.
func (it *Iterator) FilterEntry(fn FilterFunc) *Iterator {
	it.filter = fn
	return it
}

// Depth reports the current traversal depth: the length of the stack,
// i.e. the depth of the entries being read from the top listing (one
// more than the depth of the directory that listing belongs to).
func (it *Iterator) Depth() int {
	return len(it.stack)
}

// SkipCurrentDir discards the top-of-stack listing without reading any
// more of its entries; siblings already queued at shallower depths are
// unaffected. If a post-order record was deferred for the directory
// being discarded, it is dropped rather than eventually emitted. Calling
// this outside of having just received a directory record is harmless:
// it simply abandons whatever is currently on top of the stack.
func (it *Iterator) SkipCurrentDir() {
	if len(it.stack) == 0 {
		return
	}
	it.skipRequested = true
}

// applySkip performs the deferred effect of SkipCurrentDir at a point in
// Next where popping the stack is safe; this keeps SkipCurrentDir itself
// free of any chance of re-entrant corruption of the stack mid-pull.
func (it *Iterator) applySkip() {
	if !it.skipRequested {
		return
	}
	it.skipRequested = false
	popped := it.popTop()
	if it.contentsFirst && len(it.deferred) > 0 &&
		it.deferred[len(it.deferred)-1].depth == popped.parentDepth {
		it.deferred = it.deferred[:len(it.deferred)-1]
	}
}

// Next advances the state machine and returns the next record, or nil
// with a nil error once the traversal is exhausted. Exactly one of
// (entry, err) is non-nil on any call that is not the terminal one.
func (it *Iterator) Next() (*Entry, error) {
	it.applySkip()

	if it.state == stateExhausted {
		return nil, nil
	}

	if it.state == stateUnstarted {
		it.state = stateDescending
		entry, err, emit := it.seedRoot()
		if err != nil {
			it.state = stateExhausted
			return nil, err
		}
		if emit {
			return entry, nil
		}
		// Either min_depth > 0 suppressed the root record, or
		// contents_first deferred it until the stack drains; either
		// way, fall through into the main loop below.
	}

	for len(it.stack) > 0 {
		it.applySkip()
		if len(it.stack) == 0 {
			break
		}

		top := it.stack[len(it.stack)-1]
		raw, ok := top.next()
		if !ok {
			// listing exhausted: pop it, possibly emitting its
			// deferred post-order record.
			entry, emit := it.popAndMaybeEmitDeferred()
			if emit {
				return entry, nil
			}
			continue
		}

		if raw.err != nil {
			return nil, pathErr("readdir", top.dirPath, top.parentDepth, raw.err)
		}

		if raw.name == "." || raw.name == ".." {
			continue
		}

		entry, err, action := it.classify(top, raw)
		switch action {
		case actionError:
			return nil, err
		case actionSuppressed:
			continue
		case actionDefer:
			continue
		case actionEmit:
			return entry, nil
		}
	}

	// stack empty: flush any remaining deferred post-order record,
	// then go terminal.
	if it.contentsFirst {
		for len(it.deferred) > 0 {
			d := it.deferred[len(it.deferred)-1]
			it.deferred = it.deferred[:len(it.deferred)-1]
			if it.inDepthWindow(d.depth) {
				it.state = stateExhausted
				return d.entry, nil
			}
		}
	}

	it.state = stateExhausted
	return nil, nil
}

type classifyAction int

const (
	actionEmit classifyAction = iota
	actionSuppressed
	actionDefer
	actionError
)

// seedRoot synthesises the root's own entry record. The root is always
// followed regardless of FollowLinks -- a traversal rooted at a
// symlink-to-directory is meaningless otherwise -- but its record's
// FollowLink is always false, a deliberate ergonomic exception. That
// exception only covers FollowLink: PathIsSymbolicLink still reports
// whether the root path itself is a symlink, same as any other entry.
func (it *Iterator) seedRoot() (*Entry, error, bool) {
	var fi Info
	if err := statm(it.root, &fi); err != nil {
		return nil, pathErr("stat", it.root, 0, err), false
	}

	typ := Regular
	if fi.IsDir() {
		typ = Directory
	}

	rawLink := false
	if lt, err := lstatFileType(it.root); err == nil {
		rawLink = lt == Symlink
	}

	e := &Entry{path: it.root, typ: typ, depth: 0, followLink: false, rawLink: rawLink}
	if k, hasIno := fi.Ino, fi.Ino != 0; hasIno {
		e.ino, e.hasIno = k, true
	}

	if it.sameFileSystem {
		if !same.SupportsDev {
			return nil, &NoPathError{Op: "same_file_system", Dep: 0,
				Err: errUnsupportedDev}, false
		}
		it.rootDev = fi.Dev
	}

	if typ == Directory && 0 <= it.maxDepth {
		it.pushListing(it.root, 0)
		if it.contentsFirst {
			it.deferred = append(it.deferred, deferredDir{entry: e, depth: 0})
			return nil, nil, false
		}
	}

	if it.inDepthWindow(0) {
		return e, nil, true
	}
	return e, nil, false
}

// classify resolves one raw entry into either an emitted/deferred record
// or a descent, exactly per the pre-order advance algorithm: prefer the
// listing's type hint, stat only when the hint is unusable or when
// following a link.
func (it *Iterator) classify(top *listing, raw rawEntry) (*Entry, error, classifyAction) {
	childPath := filepath.Join(top.dirPath, raw.name)
	depth := top.parentDepth + 1

	typ := raw.hint
	if !raw.hasHint {
		fi, err := lstatFileType(childPath)
		if err != nil {
			return nil, pathErr("lstat", childPath, depth, err), actionError
		}
		typ = fi
	}

	rawLink := typ == Symlink
	followed := false
	var ino uint64
	var hasIno bool

	if typ == Symlink && it.followLinks {
		fi, err := statTarget(childPath)
		if err != nil {
			return nil, pathErr("stat", childPath, depth, err), actionError
		}
		typ = fi.typ
		ino, hasIno = fi.ino, fi.hasIno
		followed = true

		if typ == Directory {
			if loopErr := it.checkCycle(childPath, depth); loopErr != nil {
				return nil, loopErr, actionError
			}
		}
	} else {
		fi, err := lstatIno(childPath)
		if err == nil {
			ino, hasIno = fi.ino, fi.hasIno
		}
	}

	e := &Entry{path: childPath, typ: typ, depth: depth, followLink: followed, rawLink: rawLink}
	e.ino, e.hasIno = ino, hasIno

	if typ == Directory {
		return it.classifyDirectory(e, childPath, depth)
	}

	if it.filter != nil && it.inDepthWindow(depth) && !it.filter(e) {
		return nil, nil, actionSuppressed
	}
	if !it.inDepthWindow(depth) {
		return nil, nil, actionSuppressed
	}
	return e, nil, actionEmit
}

// classifyDirectory implements steps (g) and (h) of the advance
// algorithm: descend if under max_depth, otherwise emit without
// descending; respect contents_first by deferring instead of emitting.
func (it *Iterator) classifyDirectory(e *Entry, childPath string, depth int) (*Entry, error, classifyAction) {
	if it.filter != nil && it.inDepthWindow(depth) && !it.filter(e) {
		return nil, nil, actionSuppressed
	}

	if it.sameFileSystem {
		var fi Info
		if err := statm(childPath, &fi); err != nil {
			return nil, pathErr("stat", childPath, depth, err), actionError
		}
		if fi.Dev != it.rootDev {
			return nil, nil, actionSuppressed
		}
	}

	if depth < it.maxDepth {
		it.pushListing(childPath, depth)
		if it.contentsFirst {
			it.deferred = append(it.deferred, deferredDir{entry: e, depth: depth})
			return nil, nil, actionDefer
		}
		if !it.inDepthWindow(depth) {
			return nil, nil, actionSuppressed
		}
		return e, nil, actionEmit
	}

	// depth >= maxDepth: emit without descending, regardless of
	// contents_first (there is nothing nested to wait for).
	if !it.inDepthWindow(depth) {
		return nil, nil, actionSuppressed
	}
	return e, nil, actionEmit
}

// checkCycle walks pathStack from most recent ancestor to root, asking
// same.Same to compare childPath's identity against each in turn. Only
// called once typ has already been resolved to Directory for a followed
// link. An ancestor that no longer compares cleanly (e.g. removed mid-walk)
// is skipped rather than treated as fatal, but if childPath itself can
// never be identified against any ancestor, that error is surfaced
// instead of silently reporting "no cycle".
func (it *Iterator) checkCycle(childPath string, depth int) error {
	var lastErr error
	errCount := 0
	for i := len(it.pathStack) - 1; i >= 0; i-- {
		ancestor := it.pathStack[i]
		eq, err := same.Same(childPath, ancestor)
		if err != nil {
			lastErr = err
			errCount++
			continue
		}
		if eq {
			return &LoopError{Ancestor: ancestor, Child: childPath, Dep: depth}
		}
	}
	if errCount > 0 && errCount == len(it.pathStack) {
		return &NoPathError{Op: "same", Dep: depth, Err: lastErr}
	}
	return nil
}

// inDepthWindow reports whether depth falls in [minDepth, maxDepth]: the
// emission gate, independent of whether the traversal descends there.
func (it *Iterator) inDepthWindow(depth int) bool {
	return depth >= it.minDepth && depth <= it.maxDepth
}

// pushListing implements the push algorithm: evict the oldest Open
// listing if at capacity, open the new directory (capturing any error
// in place rather than failing the push), eagerly drain+sort it if an
// ordering function is configured, and extend pathStack when following
// links.
func (it *Iterator) pushListing(dirPath string, parentDepth int) {
	if it.countOpen() >= it.maxOpen {
		it.evictOldest()
	}

	l := openListing(dirPath, parentDepth)

	if it.sortBy != nil && l.isOpen() {
		it.sortAndClose(l)
	}

	it.stack = append(it.stack, l)
	if it.followLinks {
		it.pathStack = append(it.pathStack, dirPath)
	}
	it.logf("push depth=%d path=%q open=%v", parentDepth+1, dirPath, l.isOpen())
}

// sortAndClose drains l eagerly and sorts the buffered results per
// sortBy, with errors sorted to the end and considered equal to one
// another -- the chosen resolution for the open question of how
// sort-time errors should compare, pinned down for determinism.
func (it *Iterator) sortAndClose(l *listing) {
	childDepth := l.parentDepth + 1
	l.drain(func(raw rawEntry) result {
		if raw.err != nil {
			return result{err: raw.err}
		}
		childPath := filepath.Join(l.dirPath, raw.name)
		typ := raw.hint
		if !raw.hasHint {
			fi, err := lstatFileType(childPath)
			if err != nil {
				return result{err: pathErr("lstat", childPath, childDepth, err)}
			}
			typ = fi
		}
		return result{entry: &Entry{path: childPath, typ: typ, depth: childDepth, rawLink: typ == Symlink}}
	})

	sort.SliceStable(l.buffer, func(i, j int) bool {
		a, b := l.buffer[i], l.buffer[j]
		switch {
		case a.err != nil && b.err == nil:
			return false
		case a.err == nil && b.err != nil:
			return true
		case a.err != nil && b.err != nil:
			return false
		default:
			return it.sortBy(a.entry, b.entry) < 0
		}
	})
}

// popTop removes the top of stack (and, in lockstep, pathStack), then
// re-establishes oldestOpen so it never points past the new, shorter
// stack -- a popped slot can never remain "the oldest open".
func (it *Iterator) popTop() *listing {
	n := len(it.stack)
	top := it.stack[n-1]
	top.close()
	it.stack = it.stack[:n-1]
	if it.followLinks {
		it.pathStack = it.pathStack[:len(it.pathStack)-1]
	}
	if it.oldestOpen > len(it.stack) {
		it.oldestOpen = len(it.stack)
	}
	it.logf("pop depth=%d path=%q", n, top.dirPath)
	return top
}

// popAndMaybeEmitDeferred pops an exhausted listing and, if post-order
// is enabled and a record was deferred for exactly this directory,
// returns it for emission (subject to the depth window).
func (it *Iterator) popAndMaybeEmitDeferred() (*Entry, bool) {
	popped := it.popTop()

	if !it.contentsFirst || len(it.deferred) == 0 {
		return nil, false
	}
	last := it.deferred[len(it.deferred)-1]
	if last.depth != popped.parentDepth {
		return nil, false
	}
	it.deferred = it.deferred[:len(it.deferred)-1]
	if !it.inDepthWindow(last.depth) {
		return nil, false
	}
	return last.entry, true
}

// countOpen walks the stack from oldestOpen counting Open listings. The
// stack is as long as the current traversal depth, so a linear scan is
// cheap relative to the syscalls push/pop already make.
func (it *Iterator) countOpen() int {
	n := 0
	for i := it.oldestOpen; i < len(it.stack); i++ {
		if it.stack[i].isOpen() {
			n++
		}
	}
	return n
}

// evictOldest closes the shallowest still-Open listing, draining its
// remainder into memory, and advances oldestOpen past it.
func (it *Iterator) evictOldest() {
	for i := it.oldestOpen; i < len(it.stack); i++ {
		l := it.stack[i]
		if !l.isOpen() {
			continue
		}
		childDepth := l.parentDepth + 1
		l.drain(func(raw rawEntry) result {
			if raw.err != nil {
				return result{err: raw.err}
			}
			childPath := filepath.Join(l.dirPath, raw.name)
			typ := raw.hint
			if !raw.hasHint {
				fi, err := lstatFileType(childPath)
				if err != nil {
					return result{err: pathErr("lstat", childPath, childDepth, err)}
				}
				typ = fi
			}
			return result{entry: &Entry{path: childPath, typ: typ, depth: childDepth, rawLink: typ == Symlink}}
		})
		it.logf("evict depth=%d path=%q", childDepth, l.dirPath)
		it.oldestOpen = i + 1
		return
	}
}

func (it *Iterator) logf(format string, args ...interface{}) {
	if it.log != nil {
		it.log.Debug(format, args...)
	}
}
