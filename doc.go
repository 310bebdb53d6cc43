// doc.go - package overview
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

// Package walk implements a streaming, resource-bounded recursive
// directory traversal. Unlike filepath.WalkDir, the traversal is driven
// by explicit calls to Iterator.Next rather than a single callback, and
// the number of simultaneously open directory handles is capped
// (Builder.MaxOpen) regardless of how deep the tree is: once the cap is
// hit, the oldest still-open directory listing is drained into memory
// and its OS handle released.
//
// A traversal is built with New(root) and a chain of Builder setters,
// terminated by Iterator():
//
//	it := walk.New("/some/dir").FollowLinks(true).MaxOpen(4).Iterator()
//	for {
//		ent, err := it.Next()
//		if ent == nil && err == nil {
//			break
//		}
//		if err != nil {
//			log.Printf("walk: %s", err)
//			continue
//		}
//		fmt.Println(ent.Path())
//	}
//
// The iterator is single-threaded: it must be driven by one goroutine at
// a time, though independent iterators (e.g. one per root) may run
// concurrently on separate goroutines -- see the walkpool package for a
// ready-made fan-out over many roots.
package walk
