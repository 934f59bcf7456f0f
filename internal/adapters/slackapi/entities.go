package slackapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

type repliesResponse struct {
	Messages []domain.Message `json:"messages"`
}

type channelResponse struct {
	Channel *domain.Channel `json:"channel"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type teamResponse struct {
	Team *domain.Team `json:"team"`
}

// FetchConversation fetches the thread containing ts. The thread is looked up
// by threadTS when set, otherwise by ts.
func (c *Client) FetchConversation(ctx context.Context, channelID, ts, threadTS string) (domain.MessageAndThread, error) {
	lookup := threadTS
	if lookup == "" {
		lookup = ts
	}

	resp, err := fetchOne(ctx, c, channelID, c.repliesRequest(channelID, lookup), decode[repliesResponse])
	if err != nil {
		var notOk *domain.ResponseNotOkError
		if errors.As(err, &notOk) {
			return domain.MessageAndThread{}, fmt.Errorf("%w: %w", domain.ErrInvalidMessageResponse, err)
		}
		return domain.MessageAndThread{}, err
	}

	return domain.NewMessageAndThread(resp.Messages, ts)
}

// FetchChannel fetches conversation metadata for one channel.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	req := c.infoRequest(methodChannelInfo, "channel", channelID)
	return fetchOne(ctx, c, channelID, req, func(method, body string) (*domain.Channel, error) {
		resp, err := decode[channelResponse](method, body)
		if err != nil {
			return nil, err
		}
		if resp.Channel == nil {
			return nil, fmt.Errorf("%w: %s: no channel in response", domain.ErrMalformedResponse, method)
		}
		return resp.Channel, nil
	})
}

// FetchUsers fetches every user in ids concurrently.
func (c *Client) FetchUsers(ctx context.Context, ids []string) (map[string]domain.User, error) {
	requestFor := func(id string) Request { return c.infoRequest(methodUserInfo, "user", id) }
	return fetchMany(ctx, c, ids, requestFor, func(method, body string) (domain.User, error) {
		resp, err := decode[userResponse](method, body)
		if err != nil {
			return domain.User{}, err
		}
		if resp.User == nil {
			return domain.User{}, fmt.Errorf("%w: %s: no user in response", domain.ErrMalformedResponse, method)
		}
		return *resp.User, nil
	})
}

// FetchTeams fetches every team in ids concurrently.
func (c *Client) FetchTeams(ctx context.Context, ids []string) (map[string]domain.Team, error) {
	requestFor := func(id string) Request { return c.infoRequest(methodTeamInfo, "team", id) }
	return fetchMany(ctx, c, ids, requestFor, func(method, body string) (domain.Team, error) {
		resp, err := decode[teamResponse](method, body)
		if err != nil {
			return domain.Team{}, err
		}
		if resp.Team == nil {
			return domain.Team{}, fmt.Errorf("%w: %s: no team in response", domain.ErrMalformedResponse, method)
		}
		return *resp.Team, nil
	})
}

// FetchFileData downloads a private file URL. Session credentials are only
// attached for Slack hosts and the configured API host.
func (c *Client) FetchFileData(ctx context.Context, fileURL string) ([]byte, error) {
	req := Request{
		Name:   methodFileDownload,
		URL:    fileURL,
		Method: http.MethodGet,
	}
	if c.trustedHost(fileURL) {
		req.Headers = c.sessionHeaders()
	} else {
		log.GlobalWarnCtx(ctx, "downloading file from non-slack host without credentials", "url", fileURL)
	}
	body, err := c.send(ctx, fileURL, req)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}
