package usecases

import (
	"fmt"
	"sort"

	"slack-archiver/internal/domain"
)

// collectUserIDs gathers the sender and reaction users of every message in
// both the message and the thread, plus a DM channel's counterpart.
func collectUserIDs(mt domain.MessageAndThread, channel *domain.Channel) (*domain.IdentifierSet, error) {
	ids := &domain.IdentifierSet{}

	for _, messages := range [][]domain.Message{mt.Message, mt.Thread} {
		for _, m := range messages {
			if m.User == "" {
				return nil, fmt.Errorf("%w: ts=%s", domain.ErrUserIDMissing, m.TS)
			}
			ids.Add(m.User)
			for _, r := range m.Reactions {
				ids.Add(r.Users...)
			}
		}
	}

	if channel != nil {
		ids.Add(channel.User)
	}

	return ids, nil
}

// collectTeamIDs gathers the team of every fetched user. Users are visited in
// id order so the request order is stable.
func collectTeamIDs(users map[string]domain.User) (*domain.IdentifierSet, error) {
	userIDs := make([]string, 0, len(users))
	for id := range users {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	ids := &domain.IdentifierSet{}
	for _, id := range userIDs {
		teamID := users[id].TeamID
		if teamID == "" {
			return nil, fmt.Errorf("%w: user=%s", domain.ErrTeamIDMissing, id)
		}
		ids.Add(teamID)
	}

	return ids, nil
}
