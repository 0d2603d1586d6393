package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessorRunsSubmittedWork(t *testing.T) {
	p := NewProcessor(WithWorkers(2), WithQueueSize(4))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = p.Run(ctx)
		close(done)
	}()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var count int
	wg.Add(3)
	for i := 0; i < 3; i++ {
		p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	wg.Wait()
	mu.Lock()
	require.Equal(t, 3, count)
	mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestProcessorRecoversPanic(t *testing.T) {
	p := NewProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = p.Run(ctx)
		close(done)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
	// A subsequent submission still gets processed, proving the worker
	// survived the panic.
	wg.Add(1)
	p.Submit(func() { wg.Done() })
	wg.Wait()
}
