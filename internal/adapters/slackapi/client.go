// Package slackapi talks to the Slack Web API with web client session credentials.
package slackapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

// DefaultBaseURL is the public Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

const slackDomain = "slack.com"

const (
	methodReplies      = "conversations.replies"
	methodChannelInfo  = "conversations.info"
	methodUserInfo     = "users.info"
	methodTeamInfo     = "team.info"
	methodFileDownload = "files.download"

	headerAuthorization = "Authorization"
	headerCookie        = "Cookie"
	headerContentType   = "Content-Type"
	formContentType     = "application/x-www-form-urlencoded"
)

// Connector creates session-bound clients that share one transport.
type Connector struct {
	baseURL string
	sender  Sender
}

// NewConnector returns a Connector for baseURL, or DefaultBaseURL when empty.
func NewConnector(baseURL string, sender Sender) *Connector {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Connector{baseURL: strings.TrimRight(baseURL, "/"), sender: sender}
}

// BaseURL returns the API root without a trailing slash.
func (c *Connector) BaseURL() string { return c.baseURL }

// Connect binds creds to a new Client. Credentials are not validated here.
func (c *Connector) Connect(creds domain.Credentials) *Client {
	return &Client{baseURL: c.baseURL, creds: creds, sender: c.sender}
}

// Client issues Slack API calls for one session.
type Client struct {
	baseURL string
	creds   domain.Credentials
	sender  Sender
}

// trustedHost reports whether rawURL may receive session credentials: https
// on slack.com or a subdomain, or the configured API host.
func (c *Client) trustedHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	if base, err := url.Parse(c.baseURL); err == nil && strings.EqualFold(u.Host, base.Host) {
		return true
	}
	if u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == slackDomain || strings.HasSuffix(host, "."+slackDomain)
}

func (c *Client) methodURL(method string, params url.Values) string {
	return c.baseURL + "/" + method + "?" + params.Encode()
}

// repliesRequest posts the token as a form field, which is how the web client
// calls conversations.replies.
func (c *Client) repliesRequest(channelID, ts string) Request {
	params := url.Values{}
	params.Set("channel", channelID)
	params.Set("ts", ts)
	params.Set("inclusive", "true")
	params.Set("pretty", "1")

	return Request{
		Name:   methodReplies,
		URL:    c.methodURL(methodReplies, params),
		Method: http.MethodPost,
		Headers: map[string]string{
			headerContentType: formContentType,
			headerCookie:      "d=" + c.creds.Cookie,
		},
		Body: url.Values{"token": {c.creds.Token}}.Encode(),
	}
}

// infoRequest builds a GET for a single-entity lookup such as users.info?user=U1.
func (c *Client) infoRequest(method, param, id string) Request {
	return Request{
		Name:    method,
		URL:     c.methodURL(method, url.Values{param: {id}}),
		Method:  http.MethodGet,
		Headers: c.sessionHeaders(),
	}
}

func (c *Client) sessionHeaders() map[string]string {
	return map[string]string{
		headerAuthorization: "Bearer " + c.creds.Token,
		headerCookie:        "d=" + c.creds.Cookie,
	}
}

// send issues req and wraps transport failures with the identifier they were for.
func (c *Client) send(ctx context.Context, id string, req Request) (string, error) {
	log.GlobalDebugCtx(ctx, "slack api call", "method", req.Name, "id", id)

	body, err := c.sender.Send(ctx, req)
	if err != nil {
		return "", &domain.TransportError{ID: id, Err: err}
	}
	return body, nil
}

type envelope struct {
	OK    *bool  `json:"ok"`
	Error string `json:"error"`
}

// checkEnvelope validates the {ok, error} fields every Slack response carries.
func checkEnvelope(method, body string) error {
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, method, err)
	}
	if env.OK == nil {
		return fmt.Errorf("%w: %s: missing ok field", domain.ErrMalformedResponse, method)
	}
	if !*env.OK {
		return &domain.ResponseNotOkError{Method: method, Code: env.Error, Response: body}
	}
	return nil
}

// decode checks the envelope, then unmarshals the whole body into T.
func decode[T any](method, body string) (T, error) {
	var out T
	if err := checkEnvelope(method, body); err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, method, err)
	}
	return out, nil
}
