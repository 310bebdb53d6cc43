// main.go - mkwalktree: build a fixture directory tree from a DSL script
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

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/opencoff/go-walk/internal/dsl"
	flag "github.com/opencoff/pflag"
)

var Z = path.Base(os.Args[0])

func main() {
	var help, stdout bool
	var root string

	fs := flag.NewFlagSet(Z, flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.StringVarP(&root, "root", "r", "", "Build the tree at `DIR` [required]")
	fs.BoolVarP(&stdout, "log-stdout", "", true, "Put log output to STDOUT [True]")
	fs.SetOutput(os.Stdout)

	if err := fs.Parse(os.Args[1:]); err != nil {
		die("%s", err)
	}

	if help || len(root) == 0 {
		usage(fs)
	}

	args := fs.Args()
	if len(args) != 1 {
		die("Usage: %s -r DIR script.t", Z)
	}

	steps, err := dsl.ReadScript(args[0])
	if err != nil {
		die("%s", err)
	}

	logfile := path.Join(root, "mkwalktree.log")
	if stdout {
		logfile = "STDOUT"
	}

	env, err := dsl.NewEnv(Z, root, logfile)
	if err != nil {
		die("%s", err)
	}
	defer env.Close()

	if err := dsl.Run(env, steps); err != nil {
		die("%s", err)
	}

	fmt.Printf("%s: built tree at %s\n", Z, root)
}

func usage(fs *flag.FlagSet) {
	fmt.Printf("%s - build a directory tree from a DSL script, for exercising package walk.\n\nUsage: %s [options] script.t\n\nOptions:\n", Z, Z)
	fs.PrintDefaults()
	os.Exit(1)
}

func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", Z, fmt.Sprintf(format, args...))
	os.Exit(1)
}
