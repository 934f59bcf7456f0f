package log

// Transporter is a log destination.
type Transporter interface {
	Name() string

	// Write delivers one entry. It is only ever called from the buffer's worker goroutine.
	Write(entry Entry) error

	// Close releases the destination. Write is not called afterwards.
	Close() error
}
