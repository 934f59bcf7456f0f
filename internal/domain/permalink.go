package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

const (
	threadTSKey = "thread_ts"

	// Slack packs a ts into the path as 10 integer digits followed by 6 fractional digits.
	tsIntegerDigits = 10
	tsTotalDigits   = 16
)

// tsSegmentRegex matches the p<digits> path segment of a permalink.
var tsSegmentRegex = regexp.MustCompile(`^p(\d+)$`)

// Permalink holds the identifiers extracted from a Slack message link.
// Example: https://acme.slack.com/archives/C0123ABCD/p1700000000123456?thread_ts=1699999999.000100
type Permalink struct {
	ChannelID string
	TS        string
	ThreadTS  string // empty when the link has no thread_ts
}

// ParsePermalink extracts the channel id, message ts and optional thread ts from a Slack URL.
func ParsePermalink(raw string) (Permalink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Permalink{}, fmt.Errorf("%w %q: %v", ErrURLParse, raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Permalink{}, fmt.Errorf("%w %q: not an absolute url", ErrURLParse, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	channelID, err := parseChannelID(segments)
	if err != nil {
		return Permalink{}, err
	}

	ts, err := parseTS(segments)
	if err != nil {
		return Permalink{}, err
	}

	return Permalink{
		ChannelID: channelID,
		TS:        ts,
		ThreadTS:  u.Query().Get(threadTSKey),
	}, nil
}

// parseChannelID returns the first segment that looks like a channel id.
// Public channels start with 'C', direct messages with 'D' and private groups with 'G'.
func parseChannelID(segments []string) (string, error) {
	for _, s := range segments {
		if strings.HasPrefix(s, "C") || strings.HasPrefix(s, "D") || strings.HasPrefix(s, "G") {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: path segments %q", ErrChannelIDNotFound, segments)
}

func parseTS(segments []string) (string, error) {
	for _, s := range segments {
		matches := tsSegmentRegex.FindStringSubmatch(s)
		if matches == nil {
			continue
		}

		digits := matches[1]
		if len(digits) != tsTotalDigits {
			return "", fmt.Errorf("%w: %q has %d digits, want %d", ErrTimestampMalformed, s, len(digits), tsTotalDigits)
		}
		return digits[:tsIntegerDigits] + "." + digits[tsIntegerDigits:], nil
	}
	return "", fmt.Errorf("%w: path segments %q", ErrTimestampNotFound, segments)
}

// EffectiveThreadTS is the ts used to look the thread up: thread_ts when present, else ts.
func (p Permalink) EffectiveThreadTS() string {
	if p.ThreadTS != "" {
		return p.ThreadTS
	}
	return p.TS
}

// FileName returns the archive file name: channel id followed by the sorted,
// de-duplicated thread ts and ts, joined with '-'.
func (p Permalink) FileName() string {
	stamps := []string{p.EffectiveThreadTS()}
	if p.TS != stamps[0] {
		stamps = append(stamps, p.TS)
	}
	sort.Strings(stamps)

	return strings.Join(append([]string{p.ChannelID}, stamps...), "-") + ".json"
}
