package slackapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slack-archiver/internal/domain"
)

// Request is one Slack API call, independent of the transport that sends it.
type Request struct {
	Name    string            `json:"name"` // Slack method, e.g. "users.info"
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body,omitempty"`
}

// Sender delivers a request and returns the raw response body.
type Sender interface {
	Send(ctx context.Context, req Request) (string, error)
}

// SenderFunc adapts a plain function to Sender.
type SenderFunc func(ctx context.Context, req Request) (string, error)

func (f SenderFunc) Send(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

const maxResponseBytes = 64 << 20

// ErrResponseTooLarge is returned instead of a truncated body.
var ErrResponseTooLarge = errors.New("response too large")

// HTTPSender sends requests with net/http.
type HTTPSender struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPSender uses http.DefaultClient when client is nil.
func NewHTTPSender(client *http.Client) *HTTPSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{client: client, maxBytes: maxResponseBytes}
}

// Send fails on non-2xx statuses. Slack reports API failures as 200 with
// ok=false, so those bodies are returned for the caller to decode.
func (s *HTTPSender) Send(ctx context.Context, r Request) (string, error) {
	var body io.Reader
	if r.Body != "" {
		body = strings.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, s.maxBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	return string(data), nil
}

// Outcomes reported to a CallObserver.
const (
	OutcomeOK        = "ok"
	OutcomeNotOK     = "not_ok"
	OutcomeMalformed = "malformed"
	OutcomeTransport = "transport_error"
)

// CallObserver receives one notification per sent request.
type CallObserver interface {
	ObserveCall(method, outcome string, elapsed time.Duration)
}

// WithObserver wraps next so every call is reported to obs.
func WithObserver(next Sender, obs CallObserver) Sender {
	return SenderFunc(func(ctx context.Context, req Request) (string, error) {
		start := time.Now()
		body, err := next.Send(ctx, req)
		obs.ObserveCall(req.Name, callOutcome(req, body, err), time.Since(start))
		return body, err
	})
}

func callOutcome(req Request, body string, err error) string {
	if err != nil {
		return OutcomeTransport
	}
	// File contents have no envelope.
	if req.Name == methodFileDownload {
		return OutcomeOK
	}

	err = checkEnvelope(req.Name, body)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrResponseNotOk):
		return OutcomeNotOK
	default:
		return OutcomeMalformed
	}
}
