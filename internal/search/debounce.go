// Package search provides the debounced query runner behind
// `hly search --watch`: successive queries typed on stdin are coalesced so
// only the most recent one reaches the gateway once input goes quiet.
package search

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultInterval is the quiet period before a query fires.
const DefaultInterval = 300 * time.Millisecond

// Debouncer coalesces rapid query submissions. Only the most recently
// submitted query is passed to run, and only after the quiet interval has
// elapsed without another submission.
type Debouncer struct {
	mu       sync.Mutex
	latest   string
	debounce func(func())
	run      func(query string)
}

// NewDebouncer creates a Debouncer firing run after interval of quiet.
func NewDebouncer(interval time.Duration, run func(query string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{
		debounce: debounce.New(interval),
		run:      run,
	}
}

// Submit records a query and (re)arms the timer.
func (d *Debouncer) Submit(query string) {
	d.mu.Lock()
	d.latest = query
	d.mu.Unlock()

	d.debounce(func() {
		d.mu.Lock()
		q := d.latest
		d.mu.Unlock()
		d.run(q)
	})
}

// Watch reads queries line by line from r, debouncing them into run. Blank
// lines are ignored. It returns when r is exhausted or ctx is cancelled,
// after allowing a final pending query to fire.
func Watch(ctx context.Context, r io.Reader, interval time.Duration, run func(query string)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := NewDebouncer(interval, run)

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				// Let a pending query fire before returning.
				time.Sleep(interval + 50*time.Millisecond)
				return <-errc
			}
			if q := strings.TrimSpace(line); q != "" {
				d.Submit(q)
			}
		}
	}
}
