// cmd_mkfile.go - implements the "mkfile" script command
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
	"math/rand/v2"
	"path"

	flag "github.com/opencoff/pflag"
)

type mkfileCmd struct {
	*flag.FlagSet

	mkdir bool
	minsz SizeValue
	maxsz SizeValue
}

func (t *mkfileCmd) Name() string { return "mkfile" }

func (t *mkfileCmd) Reset() {
	t.mkdir = false
}

// mkfile [-d] [-m size] [-M size] entries...
// Each entry is a path relative to $ROOT unless it is already absolute.
func (t *mkfileCmd) Run(env *Env, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("mkfile: %w", err)
	}

	env.debugf("mkfile: sizes: min %d max %d", t.minsz.Value(), t.maxsz.Value())

	now := env.Start
	for _, nm := range t.Args() {
		fn := nm
		if !path.IsAbs(nm) {
			fn = path.Join(env.Root, nm)
		}

		var err error
		if t.mkdir {
			env.debugf("mkdir %s", fn)
			err = mkdir(fn, now)
		} else {
			sz := int64(rand.N(int64(t.maxsz-t.minsz)+1)) + int64(t.minsz)
			env.debugf("mkfile %s %d", fn, sz)
			err = mkfile(fn, sz, now)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	}
	return nil
}

var _ Cmd = &mkfileCmd{}

func newMkFileCmd() *mkfileCmd {
	n := &mkfileCmd{
		FlagSet: flag.NewFlagSet("mkfile", flag.ExitOnError),
		maxsz:   8 * 1024,
		minsz:   1024,
	}
	n.VarP(&n.minsz, "min-file-size", "m", "Minimum file size to be created [1k]")
	n.VarP(&n.maxsz, "max-file-size", "M", "Maximum file size to be created [8k]")
	n.BoolVarP(&n.mkdir, "dir", "d", false, "Make directories instead of files")
	return n
}

func init() {
	RegisterCommand(newMkFileCmd())
}
