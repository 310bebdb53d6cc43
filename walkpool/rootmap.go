// rootmap.go -- a concurrency-safe map of root path to its traversal stats
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

package walkpool

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// RootMap is a concurrency-safe map of root path to that root's running
// Stats, one entry per root submitted to a Pool. Every Pool worker
// touches only the entry for the root it owns, but the map itself is
// shared across all of them.
type RootMap = xsync.MapOf[string, *Stats]

// NewRootMap creates an empty RootMap.
func NewRootMap() *RootMap {
	return xsync.NewMapOf[string, *Stats]()
}
