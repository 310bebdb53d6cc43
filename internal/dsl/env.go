// env.go - the runtime environment a script executes against
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
	"os"
	"time"

	"github.com/opencoff/go-logger"
)

// Env captures the state shared across every Step of one script run: a
// single fixture-tree root (unlike the two-tree lhs/rhs comparison
// harness this package is descended from, a traversal fixture only
// ever needs one tree), a logger, and a fixed "now" so generated files
// get deterministic timestamps within one run.
type Env struct {
	Root  string
	Name  string
	Start time.Time

	log logger.Logger
}

// NewEnv creates the root directory (and a debug logger writing to
// logfile, or stdout when logfile is "STDOUT") and returns a ready Env.
func NewEnv(name, root, logfile string) (*Env, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("%s: mkdir root: %w", name, err)
	}

	lg, err := logger.NewLogger(logfile, logger.LOG_DEBUG, name,
		logger.Ldate|logger.Ltime|logger.Lmicroseconds)
	if err != nil {
		return nil, fmt.Errorf("%s: logger: %w", name, err)
	}

	return &Env{
		Root:  root,
		Name:  name,
		Start: time.Now(),
		log:   lg,
	}, nil
}

// Close flushes and closes the Env's logger.
func (e *Env) Close() {
	if e.log != nil {
		e.log.Close()
	}
}

func (e *Env) debugf(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Debug(format, args...)
	}
}
