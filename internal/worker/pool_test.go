package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// squareFunc squares the item value.
func squareFunc() ProcessFunc[int, int] {
	return func(item WorkItem[int]) Result[int] {
		return Result[int]{Value: item.Value * item.Value, Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc[int, int] {
	return func(item WorkItem[int]) Result[int] {
		atomic.AddInt32(counter, 1)
		return Result[int]{Value: item.Value, Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults[R any](pool *Pool[int, R]) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4))
	pool.Start()

	const numItems = 10
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem[int]{Value: i, Index: i})
		}
		pool.Close()
	}()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slow := func(item WorkItem[int]) Result[int] {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return Result[int]{Index: item.Index}
	}

	pool := NewPool(slow, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem[int]{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(squareFunc(), WithWorkers(2))
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}
	pool.Stop()
	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

func TestNewPool_Options(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(squareFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}

func TestReorder(t *testing.T) {
	variableDelay := func(item WorkItem[int]) Result[int] {
		if item.Index%2 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		return Result[int]{Value: item.Value * item.Value, Index: item.Index}
	}

	pool := NewPool(variableDelay, WithWorkers(4), WithBufferSize(20))
	pool.Start()

	const numItems = 10
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem[int]{Value: i, Index: i})
		}
		pool.Close()
	}()

	var got []int
	err := Reorder(pool.Results(), func(r Result[int]) error {
		got = append(got, r.Value)
		return nil
	})
	if err != nil {
		t.Fatalf("Reorder() error: %v", err)
	}

	if len(got) != numItems {
		t.Fatalf("received %d results; want %d", len(got), numItems)
	}
	for i, v := range got {
		if v != i*i {
			t.Errorf("result %d = %d; want %d", i, v, i*i)
		}
	}
}

func TestReorder_StopsOnError(t *testing.T) {
	results := make(chan Result[int], 3)
	results <- Result[int]{Index: 1}
	results <- Result[int]{Index: 0}
	results <- Result[int]{Index: 2}
	close(results)

	stop := errors.New("stop")
	var seen []int
	err := Reorder(results, func(r Result[int]) error {
		seen = append(seen, r.Index)
		if r.Index == 1 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Reorder() error = %v; want %v", err, stop)
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("seen = %v; want [0 1]", seen)
	}
}

func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem[int]{Value: i, Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}
