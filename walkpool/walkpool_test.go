// walkpool_test.go
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

package walkpool

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/opencoff/go-walk"
)

func buildRoot(t *testing.T, nfiles int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < nfiles; i++ {
		fn := filepath.Join(dir, "f")
		fn = fn + string(rune('0'+i))
		if err := os.WriteFile(fn, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %s", fn, err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("mkdir: %s", err)
	}
	return dir
}

func TestPoolMultiRoot(t *testing.T) {
	roots := []string{
		buildRoot(t, 3),
		buildRoot(t, 2),
		buildRoot(t, 4),
	}

	var mu sync.Mutex
	seen := map[string]int{}

	p := New(2, func(root string) *walk.Iterator {
		return walk.New(root).Iterator()
	}, func(root string, e *walk.Entry, err error) {
		if err != nil {
			t.Errorf("unexpected error for root %s: %s", root, err)
			return
		}
		mu.Lock()
		seen[root]++
		mu.Unlock()
	})

	if err := p.Run(roots); err != nil {
		t.Fatalf("Run: %s", err)
	}

	// 3 files + root + sub == 5; 2 files + root + sub == 4; 4 files +
	// root + sub == 6.
	want := map[string]int{roots[0]: 5, roots[1]: 4, roots[2]: 6}
	for r, n := range want {
		if seen[r] != n {
			t.Fatalf("root %s: want %d records, got %d", r, n, seen[r])
		}
	}

	st := p.Stats()
	for _, r := range roots {
		s, ok := st.Load(r)
		if !ok {
			t.Fatalf("no stats recorded for root %s", r)
		}
		if s.Errors.Load() != 0 {
			t.Fatalf("root %s: unexpected errors recorded: %d", r, s.Errors.Load())
		}
		if s.Dirs.Load() != 2 {
			t.Fatalf("root %s: want 2 dirs (root+sub), got %d", r, s.Dirs.Load())
		}
	}
}

func TestPoolEmptyRoots(t *testing.T) {
	p := New(1, func(root string) *walk.Iterator {
		return walk.New(root).Iterator()
	}, func(root string, e *walk.Entry, err error) {
		t.Fatalf("visitor should not be called with no roots")
	})

	if err := p.Run(nil); err != nil {
		t.Fatalf("Run(nil): %s", err)
	}
}
