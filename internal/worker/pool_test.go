package worker_test

import (
	"sort"
	"strconv"
	"testing"

	"github.com/prepflow/backend/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	pool := worker.NewPool[int](3, 2)

	go func() {
		for i := 0; i < 20; i++ {
			n := i
			pool.Submit(strconv.Itoa(n), func() int { return n * n })
		}
		pool.Close()
	}()

	var got []string
	sum := 0
	for res := range pool.Results() {
		got = append(got, res.JobID)
		sum += res.Output
	}

	if len(got) != 20 {
		t.Fatalf("expected 20 results, got %d", len(got))
	}
	// 0² + 1² + ... + 19²
	if sum != 2470 {
		t.Errorf("expected sum 2470, got %d", sum)
	}
	sort.Slice(got, func(i, j int) bool {
		a, _ := strconv.Atoi(got[i])
		b, _ := strconv.Atoi(got[j])
		return a < b
	})
	for i, id := range got {
		if id != strconv.Itoa(i) {
			t.Errorf("missing job %d", i)
			break
		}
	}
}

func TestPool_CloseWithoutJobs(t *testing.T) {
	pool := worker.NewPool[string](0, 0)
	pool.Close()

	for res := range pool.Results() {
		t.Errorf("unexpected result %v", res)
	}
}
