package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

const (
	sessionCookieName = "d"
	localConfigKey    = "localConfig_v2"
	cookieURL         = "https://app.slack.com"
)

var (
	// ErrNotSignedIn is returned when the browser profile holds no Slack session.
	ErrNotSignedIn = errors.New("browser profile is not signed in to slack")
	// ErrTeamNotFound is returned when the session has no token for the requested team.
	ErrTeamNotFound = errors.New("team not found in browser session")
)

// Session is what the web client exposes after sign in.
type Session struct {
	TeamID      string
	TeamName    string
	TeamURL     string
	Credentials domain.Credentials
}

// pageState is the raw material read from a loaded client page.
type pageState struct {
	LocalConfig string
	Pathname    string
	Cookies     []*network.Cookie
}

// TabRunner runs a function inside a browser tab.
type TabRunner interface {
	WithTab(ctx context.Context, fn func(tabCtx context.Context) error) error
}

// pageReader loads target in a tab and reads the page state.
type pageReader func(tabCtx context.Context, target string) (pageState, error)

// CredentialExtractor reads the xoxc token and d cookie of a signed-in profile.
type CredentialExtractor struct {
	tabs TabRunner
	read pageReader
}

// NewCredentialExtractor creates an extractor backed by tabs.
func NewCredentialExtractor(tabs TabRunner) *CredentialExtractor {
	return &CredentialExtractor{tabs: tabs, read: readPage}
}

// Extract opens workspaceURL, for example https://app.slack.com/client/T0001,
// and returns the session of the team it shows.
func (e *CredentialExtractor) Extract(ctx context.Context, workspaceURL string) (Session, error) {
	u, err := url.Parse(workspaceURL)
	if err != nil || !u.IsAbs() {
		return Session{}, fmt.Errorf("%w %q", domain.ErrURLParse, workspaceURL)
	}

	var state pageState
	err = e.tabs.WithTab(ctx, func(tabCtx context.Context) error {
		var readErr error
		state, readErr = e.read(tabCtx, u.String())
		return readErr
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to read slack client page: %w", err)
	}

	session, err := sessionFromPage(state)
	if err != nil {
		return Session{}, err
	}

	log.GlobalInfoCtx(ctx, "browser session extracted", "team_id", session.TeamID, "team_name", session.TeamName)
	return session, nil
}

func readPage(tabCtx context.Context, target string) (pageState, error) {
	var state pageState
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`localStorage.getItem("`+localConfigKey+`") || ""`, &state.LocalConfig),
		chromedp.Evaluate(`location.pathname`, &state.Pathname),
		chromedp.ActionFunc(func(ctx context.Context) error {
			cookies, err := network.GetCookies().WithUrls([]string{cookieURL}).Do(ctx)
			if err != nil {
				return err
			}
			state.Cookies = cookies
			return nil
		}),
	)
	return state, err
}

func sessionFromPage(state pageState) (Session, error) {
	team, err := parseLocalConfig(state.LocalConfig, state.Pathname)
	if err != nil {
		return Session{}, err
	}
	cookie, err := pickCookie(state.Cookies)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		TeamID:      team.ID,
		TeamName:    team.Name,
		TeamURL:     team.URL,
		Credentials: domain.Credentials{Token: team.Token, Cookie: cookie},
	}
	if err := session.Credentials.Validate(); err != nil {
		return Session{}, err
	}
	return session, nil
}

type localTeam struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Token string `json:"token"`
}

type localConfig struct {
	Teams            map[string]localTeam `json:"teams"`
	LastActiveTeamID string               `json:"lastActiveTeamId"`
}

// parseLocalConfig picks the team named in the /client/T... path, then the
// last active team, then the only team.
func parseLocalConfig(raw, pathname string) (localTeam, error) {
	if strings.TrimSpace(raw) == "" {
		return localTeam{}, ErrNotSignedIn
	}

	var cfg localConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return localTeam{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(cfg.Teams) == 0 {
		return localTeam{}, ErrNotSignedIn
	}

	teamID := teamFromPath(pathname)
	if teamID == "" {
		teamID = cfg.LastActiveTeamID
	}
	if teamID == "" && len(cfg.Teams) == 1 {
		for id := range cfg.Teams {
			teamID = id
		}
	}

	team, ok := cfg.Teams[teamID]
	if !ok {
		return localTeam{}, fmt.Errorf("%w: %q", ErrTeamNotFound, teamID)
	}
	if team.ID == "" {
		team.ID = teamID
	}
	return team, nil
}

func teamFromPath(pathname string) string {
	segments := strings.Split(strings.Trim(pathname, "/"), "/")
	if len(segments) >= 2 && segments[0] == "client" && strings.HasPrefix(segments[1], "T") {
		return segments[1]
	}
	return ""
}

// pickCookie returns the d cookie value exactly as the browser would send it.
func pickCookie(cookies []*network.Cookie) (string, error) {
	for _, c := range cookies {
		if c != nil && c.Name == sessionCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrNotSignedIn
}
