package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"slack-archiver/pkg/log"
)

// Console writes human-readable lines for terminal use:
//
//	15:04:05 INFO  retrieval finished file=C1-1700000000.000100.json
type Console struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsole writes to os.Stderr so command output on stdout stays clean.
func NewConsole() *Console {
	return &Console{writer: os.Stderr}
}

func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Write(entry log.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", entry.Timestamp.Format("15:04:05"), entry.Level, entry.Message)

	if entry.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", entry.RequestID)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, formatValue(entry.Fields[k]))
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.writer, b.String())
	return err
}

func (c *Console) Close() error { return nil }

func formatValue(v any) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
