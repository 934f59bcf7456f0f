package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 1024

// Buffer delivers entries to transporters on a single worker goroutine.
// When the queue is full the oldest queued entry is dropped to make room.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	fallback     io.Writer

	dropped atomic.Int64
	closed  atomic.Bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewBuffer starts a buffer holding up to capacity pending entries.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity <= 0 {
		capacity = defaultBufferSize
	}
	b := &Buffer{
		queue:        make(chan Entry, capacity),
		transporters: transporters,
		fallback:     os.Stderr,
		stop:         make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// Send queues entry without blocking. Entries sent after Close are discarded.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}

	for attempt := 0; attempt < 2; attempt++ {
		select {
		case b.queue <- entry:
			return
		default:
		}

		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
	b.dropped.Add(1)
}

// Dropped returns how many entries were discarded because the queue was full.
func (b *Buffer) Dropped() int64 {
	return b.dropped.Load()
}

// Close drains the queue, then closes every transporter. Later calls are no-ops.
func (b *Buffer) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	close(b.stop)
	b.wg.Wait()

	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		default:
			for _, t := range b.transporters {
				if err := t.Close(); err != nil {
					fmt.Fprintf(b.fallback, "log transporter %q close: %v\n", t.Name(), err)
				}
			}
			return
		}
	}
}

func (b *Buffer) run() {
	defer b.wg.Done()

	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		case <-b.stop:
			return
		}
	}
}

func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(b.fallback, "log transporter %q write: %v\n", t.Name(), err)
		}
	}
}
