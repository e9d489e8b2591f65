package id

import (
	"sync"
	"testing"
)

func TestNewIsUniqueAndSortable(t *testing.T) {
	const n = 1000

	seen := make(map[string]bool, n)
	prev := ""
	for i := 0; i < n; i++ {
		v := New()
		if len(v) != 26 {
			t.Fatalf("len(%q) = %d, want 26", v, len(v))
		}
		if seen[v] {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = true
		if v <= prev {
			t.Fatalf("ids not monotonic: %q after %q", v, prev)
		}
		prev = v
	}
}

func TestNewConcurrent(t *testing.T) {
	const workers, each = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*each)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				v := New()
				mu.Lock()
				if seen[v] {
					t.Errorf("duplicate id %q", v)
				}
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
