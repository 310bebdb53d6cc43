// dsl.go - lex and parse the fixture-tree script language
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

// Package dsl implements a tiny scripted DSL for building filesystem
// fixtures -- directories, files of a given size, and symlinks -- used
// by the mkwalktree command and exercised by this package's own tests. Each
// line of a script is one command name followed by shlex-tokenized
// arguments; '#' starts a comment, a trailing '\' continues a line.
package dsl

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/opencoff/shlex"
)

// Cmd is one executable DSL verb (mkfile, symlink, ...).
type Cmd interface {
	Run(env *Env, args []string) error
	Name() string
	Reset()
}

// Step is one parsed line: the command to run and its raw arguments
// (Args[0] is the command name, same convention ReadScript's caller
// expects from os.Args-style argument lists).
type Step struct {
	Cmd  Cmd
	Args []string
}

type registry struct {
	sync.Mutex
	once sync.Once
	cmds map[string]Cmd
}

var commands registry

// RegisterCommand adds cmd to the global registry; called from each
// cmd_*.go file's init(). Registering the same name twice is a bug in
// the command set, not a runtime condition to recover from.
func RegisterCommand(cmd Cmd) {
	commands.Lock()
	defer commands.Unlock()

	commands.once.Do(func() {
		commands.cmds = make(map[string]Cmd)
	})

	nm := cmd.Name()
	if _, ok := commands.cmds[nm]; ok {
		panic(fmt.Sprintf("dsl: command %q already registered", nm))
	}
	commands.cmds[nm] = cmd
}

// ReadScript parses fn into an ordered list of Steps, resolving each
// line's command name against the global registry.
func ReadScript(fn string) ([]Step, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var line string
	steps := make([]Step, 0, 8)
	b := bufio.NewScanner(fd)
	for n := 1; b.Scan(); n++ {
		part := strings.TrimSpace(b.Text())
		if len(part) == 0 || part[0] == '#' {
			continue
		}
		if part[len(part)-1] == '\\' {
			line += part[:len(part)-1]
			continue
		}
		line += part

		args, err := shlex.Split(line)
		line = ""
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fn, n, err)
		}
		if len(args) == 0 {
			continue
		}

		nm := args[0]
		c, ok := commands.cmds[nm]
		if !ok {
			return nil, fmt.Errorf("%s:%d: unknown command %q", fn, n, nm)
		}
		steps = append(steps, Step{Cmd: c, Args: args})
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return steps, nil
}

// Run executes every step of a parsed script against env in order,
// expanding $ROOT and $TNAME in each argument first.
func Run(env *Env, steps []Step) error {
	lookup := map[string]string{
		"ROOT":  env.Root,
		"TNAME": env.Name,
	}
	for _, s := range steps {
		args := make([]string, 0, len(s.Args)-1)
		for _, a := range s.Args[1:] {
			d := os.Expand(a, func(key string) string {
				if v, ok := lookup[key]; ok {
					return v
				}
				return ""
			})
			args = append(args, d)
		}

		s.Cmd.Reset()
		if err := s.Cmd.Run(env, args); err != nil {
			return fmt.Errorf("%s: %s: %w", env.Name, s.Cmd.Name(), err)
		}
	}
	return nil
}
