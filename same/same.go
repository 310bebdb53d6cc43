// Package same answers one question: do two paths name the same
// underlying file object? It exists because neither a path string nor a
// freshly-read directory entry is enough to detect a hard link or a
// symlink cycle -- you need the filesystem's own notion of identity.
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
package same

// Same reports whether a and b name the same underlying file object. It
// is used by the traversal engine's cycle detector to compare a
// newly-opened directory against each ancestor on the current descent
// path.
//
// Implementations must gather both paths' identity info while both are
// still open (or the platform's equivalent of "open"): comparing
// identity tokens fetched from two independently opened-then-closed
// handles can miss a delete-and-recreate race that reuses an identity
// token in the gap between the two closes, exactly the failure mode a
// cycle detector must not have.
func Same(a, b string) (bool, error) {
	return same(a, b)
}
