package exchange

import (
	"sync"
	"testing"
)

func TestSequencerStartsAtOne(t *testing.T) {
	s := NewSequencer()

	if got := s.Next(); got != 1 {
		t.Fatalf("expected first id 1, got %d", got)
	}
	if got := s.Next(); got != 2 {
		t.Fatalf("expected second id 2, got %d", got)
	}
	if got := s.Last(); got != 2 {
		t.Fatalf("expected last issued 2, got %d", got)
	}
}

func TestSequencerConcurrent(t *testing.T) {
	s := NewSequencer()

	const workers = 8
	const perWorker = 1000

	seen := make([]map[int64]bool, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		seen[w] = make(map[int64]bool, perWorker)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				seen[w][s.Next()] = true
			}
		}(w)
	}
	wg.Wait()

	all := make(map[int64]bool, workers*perWorker)
	for w := 0; w < workers; w++ {
		for id := range seen[w] {
			if all[id] {
				t.Fatalf("id %d issued twice", id)
			}
			all[id] = true
		}
	}
	if len(all) != workers*perWorker {
		t.Fatalf("expected %d unique ids, got %d", workers*perWorker, len(all))
	}
	if s.Last() != int64(workers*perWorker) {
		t.Fatalf("expected last id %d, got %d", workers*perWorker, s.Last())
	}
}
