package shell

import (
	"context"
	"testing"
	"time"
)

func TestLoopRunsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop()
	go loop.Run(ctx)

	results := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		loop.Post(func() { results <- i })
	}

	for want := 1; want <= 3; want++ {
		select {
		case got := <-results:
			if got != want {
				t.Fatalf("got event %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestAfterFiresOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop()
	go loop.Run(ctx)

	fired := make(chan struct{})
	loop.After(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestTimerStopDropsCallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop()
	go loop.Run(ctx)

	fired := make(chan struct{}, 1)
	var timer *Timer
	done := make(chan struct{})
	loop.Post(func() {
		timer = loop.After(20*time.Millisecond, func() { fired <- struct{}{} })
		close(done)
	})
	<-done

	loop.Post(func() { timer.Stop() })

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}
