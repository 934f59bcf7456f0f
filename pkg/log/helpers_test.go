package log

import (
	"sync"
	"testing"
	"time"
)

// captureTransporter records every entry it receives.
type captureTransporter struct {
	mu       sync.Mutex
	entries  []Entry
	writeErr error
	delay    time.Duration
	closed   bool
}

func (c *captureTransporter) Name() string { return "capture" }

func (c *captureTransporter) Write(entry Entry) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.entries = append(c.entries, entry)
	return nil
}

func (c *captureTransporter) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *captureTransporter) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry{}, c.entries...)
}

func (c *captureTransporter) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// flushed closes the logger so every queued entry has been delivered.
func flushed(t *testing.T, l *Logger, c *captureTransporter) []Entry {
	t.Helper()
	l.Close()
	return c.Entries()
}
