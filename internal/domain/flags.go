package domain

import (
	"fmt"
	"strings"
)

// FeatureFlags selects which auxiliary entities a retrieval fetches.
// FetchFiles does not trigger a fetch; it only exposes file links in the result.
type FeatureFlags struct {
	FetchUsers   bool `json:"fetch_users" yaml:"fetch_users"`
	FetchChannel bool `json:"fetch_channel" yaml:"fetch_channel"`
	FetchTeam    bool `json:"fetch_team" yaml:"fetch_team"`
	FetchFiles   bool `json:"fetch_files" yaml:"fetch_files"`
}

// String renders the flags compactly, e.g. "users=1,channel=0,team=0,files=1".
func (f FeatureFlags) String() string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("users=%d,channel=%d,team=%d,files=%d",
		b(f.FetchUsers), b(f.FetchChannel), b(f.FetchTeam), b(f.FetchFiles))
}

const (
	apiTokenPrefix = "xoxc"
	cookiePrefix   = "xoxd"
)

// Credentials are the web client session values: the "xoxc" api token and
// the value of the "d" cookie, which starts with "xoxd".
type Credentials struct {
	Token  string
	Cookie string
}

// Validate checks the fixed prefixes of both values.
// The values themselves are never included in the error.
func (c Credentials) Validate() error {
	if !strings.HasPrefix(c.Token, apiTokenPrefix) {
		return fmt.Errorf("%w: token must start with %q", ErrInvalidAPIToken, apiTokenPrefix)
	}
	if !strings.HasPrefix(c.Cookie, cookiePrefix) {
		return fmt.Errorf("%w: cookie must start with %q", ErrInvalidCookie, cookiePrefix)
	}
	return nil
}
