package slackapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"slack-archiver/internal/domain"
)

// Identity is the workspace and user a session belongs to.
type Identity struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

// cookieDoer attaches the session cookie to every request slack-go makes.
type cookieDoer struct {
	client *http.Client
	cookie string
}

func (d cookieDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set(headerCookie, "d="+d.cookie)
	return d.client.Do(req)
}

// VerifyCredentials validates creds locally, then calls auth.test.
// A nil httpClient uses http.DefaultClient.
func (c *Connector) VerifyCredentials(ctx context.Context, creds domain.Credentials, httpClient *http.Client) (*Identity, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	api := slack.New(creds.Token,
		slack.OptionHTTPClient(cookieDoer{client: httpClient, cookie: creds.Cookie}),
		slack.OptionAPIURL(c.baseURL+"/"),
	)

	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.test: %w", classifySlackError(err))
	}

	return &Identity{
		URL:    resp.URL,
		Team:   resp.Team,
		User:   resp.User,
		TeamID: resp.TeamID,
		UserID: resp.UserID,
	}, nil
}

// classifySlackError maps slack-go's API rejection onto ErrResponseNotOk so
// callers see the same error classes as the rest of the client.
func classifySlackError(err error) error {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return &domain.ResponseNotOkError{Method: "auth.test", Code: slackErr.Err, Response: slackErr.Error()}
	}
	return &domain.TransportError{ID: "auth.test", Err: err}
}
