package usecases

import (
	"context"
	"fmt"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

// State is a step of a retrieval.
type State int

const (
	StateStart State = iota
	StateMessageAndThread
	StateChannelInfo
	StateUserInfo
	StateTeamInfo
	StateEnd
)

var stateNames = map[State]string{
	StateStart:            "start",
	StateMessageAndThread: "message_and_thread",
	StateChannelInfo:      "channel_info",
	StateUserInfo:         "user_info",
	StateTeamInfo:         "team_info",
	StateEnd:              "end",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type transition struct {
	from State
	when func(domain.FeatureFlags) bool
	to   State
}

// Channel info comes before users so a DM counterpart is included in the user
// fetch. Teams come after users because team ids are only known from users.
var transitions = []transition{
	{StateStart, always, StateMessageAndThread},

	{StateMessageAndThread, func(f domain.FeatureFlags) bool { return !f.FetchChannel && !f.FetchUsers }, StateEnd},
	{StateMessageAndThread, func(f domain.FeatureFlags) bool { return f.FetchChannel }, StateChannelInfo},
	{StateMessageAndThread, func(f domain.FeatureFlags) bool { return f.FetchUsers && !f.FetchChannel }, StateUserInfo},

	{StateChannelInfo, func(f domain.FeatureFlags) bool { return !f.FetchUsers }, StateEnd},
	{StateChannelInfo, func(f domain.FeatureFlags) bool { return f.FetchUsers }, StateUserInfo},

	{StateUserInfo, func(f domain.FeatureFlags) bool { return !f.FetchTeam }, StateEnd},
	{StateUserInfo, func(f domain.FeatureFlags) bool { return f.FetchTeam }, StateTeamInfo},

	{StateTeamInfo, always, StateEnd},
}

func always(domain.FeatureFlags) bool { return true }

// NextState returns the first transition out of from that matches flags.
func NextState(from State, flags domain.FeatureFlags) (State, error) {
	for _, t := range transitions {
		if t.from == from && t.when(flags) {
			return t.to, nil
		}
	}
	return from, fmt.Errorf("%w: from %s with %s", domain.ErrInvalidStateTransition, from, flags)
}

// accumulator carries everything fetched so far. Steps take it by value and
// return the updated copy.
type accumulator struct {
	permalink        domain.Permalink
	messageAndThread domain.MessageAndThread
	channel          *domain.Channel
	users            map[string]domain.User
	teams            map[string]domain.Team
}

type step func(ctx context.Context, api SlackAPI, acc accumulator) (accumulator, error)

var steps = map[State]step{
	StateMessageAndThread: fetchMessageAndThread,
	StateChannelInfo:      fetchChannelInfo,
	StateUserInfo:         fetchUserInfo,
	StateTeamInfo:         fetchTeamInfo,
}

// runStateMachine walks the transition table from Start to End, running the
// step of every state it enters.
func runStateMachine(ctx context.Context, api SlackAPI, permalink domain.Permalink, flags domain.FeatureFlags) (accumulator, error) {
	acc := accumulator{permalink: permalink}

	for state := StateStart; state != StateEnd; {
		next, err := NextState(state, flags)
		if err != nil {
			return accumulator{}, err
		}
		if err := ctx.Err(); err != nil {
			return accumulator{}, err
		}

		if run, ok := steps[next]; ok {
			log.GlobalDebugCtx(ctx, "entering state", "state", next.String())
			acc, err = run(ctx, api, acc)
			if err != nil {
				return accumulator{}, fmt.Errorf("%s: %w", next, err)
			}
		}
		state = next
	}

	return acc, nil
}

func fetchMessageAndThread(ctx context.Context, api SlackAPI, acc accumulator) (accumulator, error) {
	p := acc.permalink
	mt, err := api.FetchConversation(ctx, p.ChannelID, p.TS, p.ThreadTS)
	if err != nil {
		return acc, err
	}
	acc.messageAndThread = mt
	return acc, nil
}

func fetchChannelInfo(ctx context.Context, api SlackAPI, acc accumulator) (accumulator, error) {
	channel, err := api.FetchChannel(ctx, acc.permalink.ChannelID)
	if err != nil {
		return acc, err
	}
	acc.channel = channel
	return acc, nil
}

func fetchUserInfo(ctx context.Context, api SlackAPI, acc accumulator) (accumulator, error) {
	ids, err := collectUserIDs(acc.messageAndThread, acc.channel)
	if err != nil {
		return acc, err
	}

	users, err := api.FetchUsers(ctx, ids.Slice())
	if err != nil {
		return acc, err
	}
	log.GlobalDebugCtx(ctx, "fetched users", "count", len(users))

	acc.users = users
	return acc, nil
}

func fetchTeamInfo(ctx context.Context, api SlackAPI, acc accumulator) (accumulator, error) {
	ids, err := collectTeamIDs(acc.users)
	if err != nil {
		return acc, err
	}

	teams, err := api.FetchTeams(ctx, ids.Slice())
	if err != nil {
		return acc, err
	}
	log.GlobalDebugCtx(ctx, "fetched teams", "count", len(teams))

	acc.teams = teams
	return acc, nil
}
