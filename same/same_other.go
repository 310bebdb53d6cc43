// same_other.go - stub for platforms with no identity primitive
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

//go:build !unix && !windows

package same

import "fmt"

// SupportsDev is false: this platform has no identity primitive wired
// up, so FollowLinks-with-cycle-detection and SameFileSystem both
// refuse to operate rather than silently under-detecting cycles.
const SupportsDev = false

func same(a, b string) (bool, error) {
	return false, fmt.Errorf("same: file identity not supported on this platform")
}
