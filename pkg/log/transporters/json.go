// Package transporters holds log.Transporter implementations.
package transporters

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"slack-archiver/pkg/log"
)

// JSON writes one JSON object per line.
type JSON struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewJSON writes to os.Stdout.
func NewJSON() *JSON {
	return &JSON{writer: os.Stdout}
}

func NewJSONWithWriter(w io.Writer) *JSON {
	return &JSON{writer: w}
}

func (j *JSON) Name() string { return "json" }

func (j *JSON) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.writer.Write(data)
	return err
}

func (j *JSON) Close() error { return nil }
