package slackapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"slack-archiver/internal/adapters/slackapi"
	"slack-archiver/internal/domain"
	"slack-archiver/test/fixtures"
)

func TestHTTPSender_Send_ForwardsRequest(t *testing.T) {
	// Arrange
	var gotMethod, gotCookie, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCookie = r.Header.Get("Cookie")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()
	sender := slackapi.NewHTTPSender(srv.Client())

	// Act
	body, err := sender.Send(context.Background(), slackapi.Request{
		URL:     srv.URL + "/conversations.replies",
		Method:  http.MethodPost,
		Headers: map[string]string{"Cookie": "d=xoxd-1"},
		Body:    "token=xoxc-1",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"ok": true}` {
		t.Errorf("body = %q", body)
	}
	if gotMethod != http.MethodPost || gotCookie != "d=xoxd-1" || gotBody != "token=xoxc-1" {
		t.Errorf("server saw %s %q %q", gotMethod, gotCookie, gotBody)
	}
}

func TestHTTPSender_Send_Non2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := slackapi.NewHTTPSender(nil).Send(context.Background(), slackapi.Request{URL: srv.URL, Method: http.MethodGet})

	if err == nil {
		t.Error("expected an error for 429")
	}
}

func TestHTTPSender_Send_NotOkBodyIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixtures.GenerateNotOkResponse("invalid_auth")))
	}))
	defer srv.Close()

	body, err := slackapi.NewHTTPSender(nil).Send(context.Background(), slackapi.Request{URL: srv.URL, Method: http.MethodGet})

	if err != nil || body == "" {
		t.Errorf("got %q, %v", body, err)
	}
}

func TestHTTPSender_Send_BodyOverLimitFails(t *testing.T) {
	testCases := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "under limit", size: 15},
		{name: "at limit", size: 16},
		{name: "one byte over", size: 17, wantErr: true},
		{name: "far over", size: 4096, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(strings.Repeat("x", tc.size)))
			}))
			defer srv.Close()
			sender := slackapi.NewHTTPSender(srv.Client())
			sender.SetMaxResponseBytes(16)

			// Act
			body, err := sender.Send(context.Background(), slackapi.Request{URL: srv.URL, Method: http.MethodGet})

			// Assert
			if tc.wantErr {
				if !errors.Is(err, slackapi.ErrResponseTooLarge) || body != "" {
					t.Errorf("got %d bytes, %v; want ErrResponseTooLarge", len(body), err)
				}
				return
			}
			if err != nil || len(body) != tc.size {
				t.Errorf("got %d bytes, %v", len(body), err)
			}
		})
	}
}

func TestFetchFileData_OversizedFile_ReturnsTransportError(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer srv.Close()
	sender := slackapi.NewHTTPSender(srv.Client())
	sender.SetMaxResponseBytes(512)
	client := slackapi.NewConnector(srv.URL+"/api", sender).Connect(testCreds)

	// Act
	data, err := client.FetchFileData(context.Background(), srv.URL+"/files-pri/T1-F1/big.bin")

	// Assert
	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) || !errors.Is(err, slackapi.ErrResponseTooLarge) {
		t.Errorf("expected a transport error wrapping ErrResponseTooLarge, got %v", err)
	}
	if data != nil {
		t.Errorf("got %d bytes of a truncated file", len(data))
	}
}

type recordedCall struct {
	method, outcome string
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (o *recordingObserver) ObserveCall(method, outcome string, _ time.Duration) {
	o.mu.Lock()
	o.calls = append(o.calls, recordedCall{method, outcome})
	o.mu.Unlock()
}

func TestWithObserver_ReportsOutcome(t *testing.T) {
	testCases := []struct {
		name    string
		req     slackapi.Request
		body    string
		err     error
		outcome string
	}{
		{name: "ok", req: slackapi.Request{Name: "users.info"}, body: `{"ok": true}`, outcome: slackapi.OutcomeOK},
		{name: "not ok", req: slackapi.Request{Name: "users.info"}, body: `{"ok": false}`, outcome: slackapi.OutcomeNotOK},
		{name: "malformed", req: slackapi.Request{Name: "team.info"}, body: `nope`, outcome: slackapi.OutcomeMalformed},
		{name: "transport", req: slackapi.Request{Name: "team.info"}, err: errors.New("dial"), outcome: slackapi.OutcomeTransport},
		{name: "file download", req: slackapi.Request{Name: "files.download"}, body: `raw bytes`, outcome: slackapi.OutcomeOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			obs := &recordingObserver{}
			inner := slackapi.SenderFunc(func(context.Context, slackapi.Request) (string, error) {
				return tc.body, tc.err
			})

			// Act
			_, _ = slackapi.WithObserver(inner, obs).Send(context.Background(), tc.req)

			// Assert
			if len(obs.calls) != 1 {
				t.Fatalf("got %d calls, want 1", len(obs.calls))
			}
			if obs.calls[0].method != tc.req.Name || obs.calls[0].outcome != tc.outcome {
				t.Errorf("got %+v, want %s/%s", obs.calls[0], tc.req.Name, tc.outcome)
			}
		})
	}
}
