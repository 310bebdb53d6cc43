// walkpool.go - concurrent fan-out over multiple independent roots
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

// Package walkpool fans a set of independent roots out across a
// worker-pool of goroutines, each goroutine owning exactly one
// single-threaded walk.Iterator for the lifetime of its root. It does
// not parallelize a single tree's traversal -- that stays strictly
// sequential, per package walk's concurrency model -- it only lets
// distinct roots make progress concurrently, which is explicitly legal
// since two Iterators may run on disjoint goroutines so long as each is
// owned by exactly one.
package walkpool

import (
	"sync/atomic"

	"github.com/opencoff/go-logger"
	"github.com/opencoff/go-walk"
)

// Visitor is invoked once per yielded record or error, for every root,
// from whichever goroutine owns that root. Implementations that mutate
// shared state must synchronize themselves; Stats (kept per root in a
// RootMap) is the concurrency-safe accumulator this package provides
// out of the box.
type Visitor func(root string, e *walk.Entry, err error)

// Configure builds the walk.Iterator used for one root. Called once per
// root, from that root's own worker goroutine, so calls for different
// roots may run concurrently.
type Configure func(root string) *walk.Iterator

// Pool drives one walk.Iterator per root concurrently, bounded by
// nworkers goroutines.
type Pool struct {
	nworkers int
	cfg      Configure
	visit    Visitor
	log      logger.Logger
	stats    *RootMap
}

// New creates a Pool that builds each root's Iterator via cfg and
// reports every record through visit. nworkers <= 1 defaults to
// runtime.NumCPU, matching WorkPool's own convention.
func New(nworkers int, cfg Configure, visit Visitor) *Pool {
	return &Pool{
		nworkers: nworkers,
		cfg:      cfg,
		visit:    visit,
		stats:    NewRootMap(),
	}
}

// WithLogger attaches a diagnostic logger; each root logs when it
// starts and finishes.
func (p *Pool) WithLogger(lg logger.Logger) *Pool {
	p.log = lg
	return p
}

// Stats returns the concurrency-safe per-root counters accumulated by
// Run. Safe to read while Run is in flight; counts for an in-progress
// root are a snapshot, not a final value.
func (p *Pool) Stats() *RootMap {
	return p.stats
}

// Run walks every root concurrently and blocks until all of them are
// exhausted. The returned error is non-nil only if a worker goroutine
// panicked (for example inside the visitor); errors yielded by
// individual Iterators are reported through Visitor, not returned here,
// so traversal of one root failing never aborts the others.
func (p *Pool) Run(roots []string) error {
	// Pre-populate one Stats slot per root from this single goroutine,
	// before any worker starts, so runOne never has to race another
	// root's worker to create it.
	for _, r := range roots {
		p.stats.Store(r, &Stats{})
	}

	wp := NewWorkPool[string](p.nworkers, func(_ int, root string) error {
		p.runOne(root)
		return nil
	})

	for _, r := range roots {
		wp.Submit(r)
	}
	wp.Close()
	return wp.Wait()
}

func (p *Pool) runOne(root string) {
	st, _ := p.stats.Load(root)
	if p.log != nil {
		p.log.Debug("walkpool: starting root %q", root)
	}

	it := p.cfg(root)
	for {
		e, err := it.Next()
		if e == nil && err == nil {
			break
		}
		if err != nil {
			st.Errors.Add(1)
		} else if e.FileType() == walk.Directory {
			st.Dirs.Add(1)
		} else {
			st.Files.Add(1)
		}
		p.visit(root, e, err)
	}

	if p.log != nil {
		p.log.Debug("walkpool: finished root %q: files=%d dirs=%d errors=%d",
			root, st.Files.Load(), st.Dirs.Load(), st.Errors.Load())
	}
}

// Stats is the concurrency-safe per-root counter set stored in a
// RootMap; every field is updated with atomic.Int64.Add from whichever
// goroutine owns that root.
type Stats struct {
	Files  atomic.Int64
	Dirs   atomic.Int64
	Errors atomic.Int64
}
