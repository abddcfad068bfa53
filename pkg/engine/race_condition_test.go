// pkg/engine/race_condition_test.go
package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/go-gridwars/pkg/event"
)

// TestEventBusRaceCondition ticks the world while other goroutines
// subscribe and cancel handlers, the way front-end listeners do.
// Run with `go test -race`.
func TestEventBusRaceCondition(t *testing.T) {
	w := newTestWorld()
	w.ModifyControlBit(BitShootRight, true)

	var received atomic.Int64
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				w.Tick(16, 2)
				time.Sleep(time.Millisecond)
			}
		}
	}()

	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sub := w.EventBus.Subscribe(event.MissileFired, func(event.Event) {
					received.Add(1)
				})
				time.Sleep(time.Millisecond)
				sub.Cancel()
			}
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(done)
	wg.Wait()

	t.Logf("handlers received %d missile events", received.Load())
}
