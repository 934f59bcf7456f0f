package browser

import (
	"context"

	"github.com/chromedp/cdproto/network"
)

type PageState = pageState

// NewCredentialExtractorWithReader replaces the chromedp page reader.
func NewCredentialExtractorWithReader(tabs TabRunner, read func(ctx context.Context, url string) (PageState, error)) *CredentialExtractor {
	return &CredentialExtractor{tabs: tabs, read: read}
}

func PickCookie(cookies []*network.Cookie) (string, error) { return pickCookie(cookies) }

func ParseLocalConfig(raw, pathname string) (id, name, url, token string, err error) {
	team, err := parseLocalConfig(raw, pathname)
	return team.ID, team.Name, team.URL, team.Token, err
}
