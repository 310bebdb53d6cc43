// split.go - split a string of the form key="a b c" into <key, [a,b,c]>
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
	"fmt"
	"strings"

	"github.com/opencoff/shlex"
)

// Split parses s of the form `key="a b c"` and returns key and the
// shlex-tokenized values.
func Split(s string) (string, []string, error) {
	i := strings.Index(s, "=")
	if i < 0 {
		return "", nil, fmt.Errorf("%s: missing separator '='", s)
	}
	key := strings.ToLower(s[:i])
	val, err := shlex.Split(strings.TrimSpace(s[i+1:]))
	return key, val, err
}
