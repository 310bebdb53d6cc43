// builder.go - fluent configuration, component E
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
	"math"

	"github.com/opencoff/go-logger"
)

// DefaultMaxOpen is the handle cap used when a Builder never calls
// MaxOpen.
const DefaultMaxOpen = 10

// CompareFunc orders two entries within the same directory listing. It
// is called only when eager sort is configured, in which case the
// listing is drained up-front so the ordering can be applied before any
// entry from that directory is yielded.
type CompareFunc func(a, b *Entry) int

// Builder accumulates traversal options and produces a fresh Iterator
// seeded at root. It never touches the filesystem itself -- every
// syscall happens lazily, from calls to the Iterator it builds.
type Builder struct {
	root string

	followLinks    bool
	maxOpen        int
	minDepth       int
	maxDepth       int
	sortBy         CompareFunc
	contentsFirst  bool
	sameFileSystem bool
	log            logger.Logger
}

// New starts a Builder rooted at root. root need not exist yet; any
// failure to stat it is surfaced as the first error from the returned
// Iterator's Next, not from New itself.
func New(root string) *Builder {
	return &Builder{
		root:     root,
		maxOpen:  DefaultMaxOpen,
		maxDepth: math.MaxInt,
	}
}

// FollowLinks enables symlink resolution. Once on, directories reached
// through a symlink are descended into and checked for cycles; see
// LoopError.
func (b *Builder) FollowLinks(v bool) *Builder {
	b.followLinks = v
	return b
}

// MaxOpen caps the number of simultaneously open directory handles. A
// value of 0 is coerced to 1, per the handle-cap invariant: there must
// always be room to open the next listing.
func (b *Builder) MaxOpen(n int) *Builder {
	if n <= 0 {
		n = 1
	}
	b.maxOpen = n
	return b
}

// MinDepth suppresses records shallower than n from emission; it does
// not prevent descent into directories at depth < n.
func (b *Builder) MinDepth(n int) *Builder {
	b.minDepth = n
	return b
}

// MaxDepth stops descent past depth n; the record at depth n is still
// emitted.
func (b *Builder) MaxDepth(n int) *Builder {
	b.maxDepth = n
	return b
}

// SortBy installs a per-directory ordering function; setting one forces
// an eager drain of every directory listing as it is opened.
func (b *Builder) SortBy(cmp CompareFunc) *Builder {
	b.sortBy = cmp
	return b
}

// ContentsFirst switches to post-order emission: a directory's record
// is yielded after all of its descendants rather than before.
func (b *Builder) ContentsFirst(v bool) *Builder {
	b.contentsFirst = v
	return b
}

// SameFileSystem refuses to descend across device boundaries. On a
// platform where device numbers are unavailable, the built Iterator's
// first Next call yields a single error and nothing else.
func (b *Builder) SameFileSystem(v bool) *Builder {
	b.sameFileSystem = v
	return b
}

// WithLogger attaches a diagnostic logger; every push/pop/evict of a
// directory listing is logged at Debug level (suppressed records are
// not logged). A nil logger (the
// default) disables this entirely at negligible cost.
func (b *Builder) WithLogger(lg logger.Logger) *Builder {
	b.log = lg
	return b
}

// Iterator validates the accumulated options (clamping min/max depth so
// min ≤ max, per the reference behaviour for that open question) and
// returns a fresh, Unstarted Iterator.
func (b *Builder) Iterator() *Iterator {
	minD, maxD := b.minDepth, b.maxDepth
	if minD > maxD {
		minD = maxD
	}
	return &Iterator{
		root:           b.root,
		followLinks:    b.followLinks,
		maxOpen:        b.maxOpen,
		minDepth:       minD,
		maxDepth:       maxD,
		sortBy:         b.sortBy,
		contentsFirst:  b.contentsFirst,
		sameFileSystem: b.sameFileSystem,
		log:            b.log,
		state:          stateUnstarted,
	}
}
