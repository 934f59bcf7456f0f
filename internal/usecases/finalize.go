package usecases

import (
	"fmt"

	"slack-archiver/internal/domain"
)

// resolve looks id up in m and fails with notFound when it is absent.
func resolve[T any](m map[string]T, id string, notFound error) (T, error) {
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", notFound, id)
	}
	return v, nil
}

// finalize replaces id references with the fetched entities. Without users
// the accumulator is returned unchanged. The input maps and slices are not modified.
func finalize(acc accumulator) (accumulator, error) {
	if acc.users == nil {
		return acc, nil
	}

	users, err := attachTeams(acc.users, acc.teams)
	if err != nil {
		return accumulator{}, err
	}
	acc.users = users

	message, err := attachUsers(acc.messageAndThread.Message, users)
	if err != nil {
		return accumulator{}, err
	}
	thread, err := attachUsers(acc.messageAndThread.Thread, users)
	if err != nil {
		return accumulator{}, err
	}
	acc.messageAndThread = domain.MessageAndThread{Message: message, Thread: thread}

	if acc.channel != nil && acc.channel.User != "" {
		counterpart, err := resolve(users, acc.channel.User, domain.ErrUserIDNotFoundInUserMap)
		if err != nil {
			return accumulator{}, err
		}
		channel := *acc.channel
		channel.UserInfo = &counterpart
		acc.channel = &channel
	}

	return acc, nil
}

func attachTeams(users map[string]domain.User, teams map[string]domain.Team) (map[string]domain.User, error) {
	out := make(map[string]domain.User, len(users))
	for id, u := range users {
		if teams != nil {
			team, err := resolve(teams, u.TeamID, domain.ErrTeamIDNotFoundInTeamMap)
			if err != nil {
				return nil, err
			}
			u.TeamInfo = &team
		}
		out[id] = u
	}
	return out, nil
}

func attachUsers(messages []domain.Message, users map[string]domain.User) ([]domain.Message, error) {
	if messages == nil {
		return nil, nil
	}

	out := make([]domain.Message, len(messages))
	for i, m := range messages {
		sender, err := resolve(users, m.User, domain.ErrUserIDNotFoundInUserMap)
		if err != nil {
			return nil, err
		}
		m.UserInfo = &sender

		if m.Reactions != nil {
			reactions := make([]domain.Reaction, len(m.Reactions))
			for j, r := range m.Reactions {
				r.UsersInfo = make([]domain.User, 0, len(r.Users))
				for _, id := range r.Users {
					u, err := resolve(users, id, domain.ErrUserIDNotFoundInUserMap)
					if err != nil {
						return nil, err
					}
					r.UsersInfo = append(r.UsersInfo, u)
				}
				reactions[j] = r
			}
			m.Reactions = reactions
		}

		out[i] = m
	}
	return out, nil
}
