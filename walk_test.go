// walk_test.go - end-to-end traversal scenarios
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

package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func mustMkdir(t *testing.T, p string) {
	t.Helper()
	if err := os.MkdirAll(p, 0755); err != nil {
		t.Fatalf("mkdir %s: %s", p, err)
	}
}

func mustFile(t *testing.T, p string) {
	t.Helper()
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatalf("mkfile %s: %s", p, err)
	}
}

func collect(t *testing.T, it *Iterator) ([]*Entry, []error) {
	t.Helper()
	var entries []*Entry
	var errs []error
	for {
		e, err := it.Next()
		if e == nil && err == nil {
			break
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

func paths(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path()
	}
	sort.Strings(out)
	return out
}

// Scenario 1: basic tree, defaults.
func TestBasicTree(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustFile(t, filepath.Join(root, "foo"))
	mustMkdir(t, filepath.Join(root, "bar"))
	mustFile(t, filepath.Join(root, "bar", "a"))
	mustFile(t, filepath.Join(root, "bar", "b"))

	it := New(root).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)
	assert(len(entries) == 5, "want 5 entries, got %d", len(entries))

	want := []string{
		root,
		filepath.Join(root, "bar"),
		filepath.Join(root, "bar", "a"),
		filepath.Join(root, "bar", "b"),
		filepath.Join(root, "foo"),
	}
	sort.Strings(want)
	got := paths(entries)
	for i := range want {
		assert(got[i] == want[i], "entry %d: want %s, got %s", i, want[i], got[i])
	}

	depths := map[string]int{}
	for _, e := range entries {
		depths[e.Path()] = e.Depth()
	}
	assert(depths[root] == 0, "root depth: want 0, got %d", depths[root])
	assert(depths[filepath.Join(root, "bar")] == 1, "bar depth wrong")
	assert(depths[filepath.Join(root, "foo")] == 1, "foo depth wrong")
	assert(depths[filepath.Join(root, "bar", "a")] == 2, "bar/a depth wrong")
	assert(depths[filepath.Join(root, "bar", "b")] == 2, "bar/b depth wrong")
}

// Scenario 2: min/max depth window.
func TestDepthWindow(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustFile(t, filepath.Join(root, "foo"))
	mustMkdir(t, filepath.Join(root, "bar"))
	mustFile(t, filepath.Join(root, "bar", "a"))
	mustFile(t, filepath.Join(root, "bar", "b"))

	it := New(root).MinDepth(2).MaxDepth(2).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)
	assert(len(entries) == 2, "want 2 entries, got %d", len(entries))

	want := []string{filepath.Join(root, "bar", "a"), filepath.Join(root, "bar", "b")}
	sort.Strings(want)
	got := paths(entries)
	for i := range want {
		assert(got[i] == want[i], "entry %d: want %s, got %s", i, want[i], got[i])
	}
}

// Scenario 3: post-order emission.
func TestPostOrder(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "foo", "abc"))
	mustFile(t, filepath.Join(root, "foo", "abc", "qrs"))
	mustFile(t, filepath.Join(root, "foo", "abc", "tuv"))
	mustFile(t, filepath.Join(root, "foo", "def"))

	it := New(root).ContentsFirst(true).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)
	assert(len(entries) == 6, "want 6 entries, got %d", len(entries))

	pos := map[string]int{}
	for i, e := range entries {
		pos[e.Path()] = i
	}

	checkAfter := func(dir, child string) {
		d, c := filepath.Join(root, dir), filepath.Join(root, child)
		assert(pos[d] > pos[c], "%s (pos %d) should come after %s (pos %d)", dir, pos[d], child, pos[c])
	}
	checkAfter("foo/abc", "foo/abc/qrs")
	checkAfter("foo/abc", "foo/abc/tuv")
	checkAfter("foo", "foo/abc")
	checkAfter("foo", "foo/def")
	assert(pos[root] == len(entries)-1, "root should be emitted last, got pos %d", pos[root])
}

// Scenario 4: symlink without follow.
func TestSymlinkNoFollow(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustFile(t, filepath.Join(root, "a"))
	err := os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "link"))
	assert(err == nil, "symlink: %s", err)

	it := New(root).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)
	assert(len(entries) == 3, "want 3 entries (root, a, link), got %d", len(entries))

	var linkEntry *Entry
	for _, e := range entries {
		if e.FileName() == "link" {
			linkEntry = e
		}
	}
	assert(linkEntry != nil, "link entry not found")
	assert(linkEntry.FileType() == Symlink, "link entry type: want Symlink, got %s", linkEntry.FileType())
	assert(linkEntry.PathIsSymbolicLink(), "link entry should report PathIsSymbolicLink")
}

// A root that is itself a symlink must always be followed (so its
// contents are reachable) but must still report PathIsSymbolicLink.
func TestSymlinkRoot(t *testing.T) {
	assert := newAsserter(t)

	base := t.TempDir()
	real := filepath.Join(base, "real")
	mustMkdir(t, real)
	mustFile(t, filepath.Join(real, "f"))

	root := filepath.Join(base, "link-root")
	err := os.Symlink(real, root)
	assert(err == nil, "symlink: %s", err)

	it := New(root).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)
	assert(len(entries) == 2, "want 2 entries (root, f), got %d", len(entries))

	var rootEntry *Entry
	for _, e := range entries {
		if e.Depth() == 0 {
			rootEntry = e
		}
	}
	assert(rootEntry != nil, "root entry not found")
	assert(rootEntry.FileType() == Directory, "root entry type: want Directory, got %s", rootEntry.FileType())
	assert(!rootEntry.FollowLink(), "root entry FollowLink should stay false, per the ergonomic exception")
	assert(rootEntry.PathIsSymbolicLink(), "symlink-rooted traversal should report PathIsSymbolicLink on the root entry")
}

// Scenario 5: symlink with follow, cycle detection.
func TestSymlinkFollowCycle(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	adir := filepath.Join(root, "a")
	mustMkdir(t, adir)
	mustFile(t, filepath.Join(adir, "f"))
	err := os.Symlink(adir, filepath.Join(adir, "loop"))
	assert(err == nil, "symlink: %s", err)

	it := New(root).FollowLinks(true).Iterator()
	entries, errs := collect(t, it)

	assert(len(errs) == 1, "want exactly 1 error, got %d: %v", len(errs), errs)
	var loopErr *LoopError
	switch e := errs[0].(type) {
	case *LoopError:
		loopErr = e
	default:
		t.Fatalf("want *LoopError, got %T: %s", errs[0], errs[0])
	}
	assert(loopErr.Ancestor == adir, "ancestor: want %s, got %s", adir, loopErr.Ancestor)
	assert(loopErr.Child == filepath.Join(adir, "loop"), "child: want %s, got %s", filepath.Join(adir, "loop"), loopErr.Child)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Path()] = true
	}
	assert(names[root], "root missing from output")
	assert(names[adir], "a missing from output")
	assert(names[filepath.Join(adir, "f")], "a/f missing from output")
}

// Scenario 6: open-handle cap under pressure.
func TestMaxOpenCap(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	buildLevels(t, root, 5, 3)

	capped := New(root).MaxOpen(1).Iterator()
	cappedEntries, cappedErrs := collect(t, capped)
	assert(len(cappedErrs) == 0, "capped run errors: %v", cappedErrs)

	uncapped := New(root).MaxOpen(1 << 20).Iterator()
	uncappedEntries, uncappedErrs := collect(t, uncapped)
	assert(len(uncappedErrs) == 0, "uncapped run errors: %v", uncappedErrs)

	assert(len(cappedEntries) == len(uncappedEntries),
		"capped yielded %d entries, uncapped yielded %d", len(cappedEntries), len(uncappedEntries))

	a, b := paths(cappedEntries), paths(uncappedEntries)
	for i := range a {
		assert(a[i] == b[i], "entry %d differs: capped=%s uncapped=%s", i, a[i], b[i])
	}
}

func buildLevels(t *testing.T, dir string, levels, fanout int) {
	t.Helper()
	if levels == 0 {
		return
	}
	for i := 0; i < fanout; i++ {
		child := filepath.Join(dir, fmt.Sprintf("d%d", i))
		mustMkdir(t, child)
		mustFile(t, filepath.Join(child, "leaf"))
		buildLevels(t, child, levels-1, fanout)
	}
}

// SkipCurrentDir must produce the same continuation as if the subtree
// didn't exist.
func TestSkipCurrentDir(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "skip"))
	mustFile(t, filepath.Join(root, "skip", "hidden"))
	mustFile(t, filepath.Join(root, "visible"))

	it := New(root).Iterator()
	var entries []*Entry
	for {
		e, err := it.Next()
		if e == nil && err == nil {
			break
		}
		assert(err == nil, "unexpected error: %s", err)
		entries = append(entries, e)
		if e.FileName() == "skip" {
			it.SkipCurrentDir()
		}
	}

	for _, e := range entries {
		assert(e.FileName() != "hidden", "hidden should have been skipped")
	}
}

// FilterEntry must drop the record and refuse to descend for a
// directory it rejects.
func TestFilterEntry(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "keep"))
	mustFile(t, filepath.Join(root, "keep", "f"))
	mustMkdir(t, filepath.Join(root, "drop"))
	mustFile(t, filepath.Join(root, "drop", "f"))

	it := New(root).Iterator().FilterEntry(func(e *Entry) bool {
		return e.FileName() != "drop"
	})

	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)

	for _, e := range entries {
		assert(e.FileName() != "drop", "drop directory should have been filtered")
		assert(!filepathHasParent(e.Path(), filepath.Join(root, "drop")), "descended into drop: %s", e.Path())
	}
}

// Ino must be populated for regular files on POSIX and must agree
// between two entries that are in fact hard links of one another.
func TestEntryIno(t *testing.T) {
	assert := newAsserter(t)

	root := t.TempDir()
	a := filepath.Join(root, "a")
	link := filepath.Join(root, "link")
	mustFile(t, a)
	if err := os.Link(a, link); err != nil {
		t.Skipf("hardlinks not supported here: %s", err)
	}

	it := New(root).Iterator()
	entries, errs := collect(t, it)
	assert(len(errs) == 0, "unexpected errors: %v", errs)

	byName := map[string]*Entry{}
	for _, e := range entries {
		byName[e.FileName()] = e
	}

	ia, ok := byName["a"].Ino()
	assert(ok, "Ino() should be populated for a regular file")
	il, ok := byName["link"].Ino()
	assert(ok, "Ino() should be populated for a regular file")
	assert(ia == il, "hardlinked entries should report the same inode, got %d and %d", ia, il)
}

func filepathHasParent(p, parent string) bool {
	rel, err := filepath.Rel(parent, p)
	if err != nil || rel == "." {
		return err == nil && rel == "."
	}
	return !strings.HasPrefix(rel, "..")
}
