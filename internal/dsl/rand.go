// rand.go - handy random bytes/ints collection
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
	"crypto/rand"
	"fmt"

	"golang.org/x/exp/constraints"
)

// randBytes fills buf with random bytes.
func randBytes(buf []byte) {
	n, err := rand.Read(buf)
	if err != nil {
		panic(fmt.Sprintf("dsl: rand: can't read %d bytes: %s", len(buf), err))
	}
	if n != len(buf) {
		panic(fmt.Sprintf("dsl: rand: partial read: expected %d, read %d bytes", len(buf), n))
	}
}

// randBuf allocates an n-byte buffer and fills it with random bytes.
func randBuf[T constraints.Integer](n T) []byte {
	b := make([]byte, n)
	randBytes(b)
	return b
}
