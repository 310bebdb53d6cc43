// cmd_symlink.go - implements the "symlink" script command
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
	"path"
	"strings"
)

type symlinkCmd struct{}

func (t *symlinkCmd) Name() string { return "symlink" }
func (t *symlinkCmd) Reset()       {}

// symlink newname@oldname [newname@oldname ...]
// oldname must already exist; both names are relative to $ROOT unless
// already absolute. A bare oldname with no path separator, e.g.
// "loop@.", lets a script point a link back at an ancestor directory to
// build a cycle fixture.
func (t *symlinkCmd) Run(env *Env, args []string) error {
	for _, arg := range args {
		if err := t.symlink(arg, env); err != nil {
			return fmt.Errorf("symlink: %w", err)
		}
	}
	return nil
}

func (t *symlinkCmd) symlink(arg string, env *Env) error {
	i := strings.Index(arg, "@")
	if i < 0 {
		return fmt.Errorf("%s: incorrect format; want NEWNAME@OLDNAME", arg)
	}
	newnm, oldnm := arg[:i], arg[i+1:]

	if !path.IsAbs(newnm) {
		newnm = path.Join(env.Root, newnm)
	}
	if !path.IsAbs(oldnm) {
		oldnm = path.Join(env.Root, oldnm)
	}

	if _, err := os.Lstat(oldnm); err != nil {
		return fmt.Errorf("%s: doesn't exist", oldnm)
	}

	env.debugf("symlink %s --> %s", newnm, oldnm)
	return os.Symlink(oldnm, newnm)
}

var _ Cmd = &symlinkCmd{}

func init() {
	RegisterCommand(&symlinkCmd{})
}
