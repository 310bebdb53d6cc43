// same_unix_test.go
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

//go:build unix

package same

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSameDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatalf("write a: %s", err)
	}
	if err := os.WriteFile(b, []byte("y"), 0644); err != nil {
		t.Fatalf("write b: %s", err)
	}

	eq, err := Same(a, b)
	if err != nil {
		t.Fatalf("Same(a, b): %s", err)
	}
	if eq {
		t.Fatalf("distinct files compared equal")
	}
}

func TestSameHardlink(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	link := filepath.Join(dir, "link")
	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatalf("write a: %s", err)
	}
	if err := os.Link(a, link); err != nil {
		t.Skipf("hardlinks not supported here: %s", err)
	}

	eq, err := Same(a, link)
	if err != nil {
		t.Fatalf("Same(a, link): %s", err)
	}
	if !eq {
		t.Fatalf("hardlinked files should compare equal")
	}
}

func TestSameDirectoryTwice(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("mkdir: %s", err)
	}

	eq, err := Same(sub, sub)
	if err != nil {
		t.Fatalf("Same(sub, sub): %s", err)
	}
	if !eq {
		t.Fatalf("a directory compared against itself should be equal")
	}
}

func TestSameMissingPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := Same(dir, filepath.Join(dir, "nope")); err == nil {
		t.Fatalf("Same against a missing path should error")
	}
}

func TestSupportsDevOnUnix(t *testing.T) {
	if !SupportsDev {
		t.Fatalf("unix build should report SupportsDev == true")
	}
}
