// script.go - convenience wrapper tying Env + ReadScript + Run together
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
	"os"
	"path/filepath"
)

// BuildTree writes script to a file under dir, runs it against a fresh
// Env rooted at dir/root, and returns that Env. Tests typically pass
// t.TempDir() as dir and discard the Env but keep its Root.
func BuildTree(name, dir, script string) (*Env, error) {
	sf := filepath.Join(dir, name+".t")
	if err := os.WriteFile(sf, []byte(script), 0600); err != nil {
		return nil, err
	}

	root := filepath.Join(dir, "root")
	env, err := NewEnv(name, root, "STDOUT")
	if err != nil {
		return nil, err
	}

	steps, err := ReadScript(sf)
	if err != nil {
		env.Close()
		return nil, err
	}

	if err := Run(env, steps); err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}
