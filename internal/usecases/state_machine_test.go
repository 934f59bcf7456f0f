package usecases_test

import (
	"errors"
	"testing"

	"slack-archiver/internal/domain"
	"slack-archiver/internal/usecases"
)

func TestNextState_Table(t *testing.T) {
	none := domain.FeatureFlags{}
	users := domain.FeatureFlags{FetchUsers: true}
	channel := domain.FeatureFlags{FetchChannel: true}
	all := domain.FeatureFlags{FetchUsers: true, FetchChannel: true, FetchTeam: true}
	usersTeam := domain.FeatureFlags{FetchUsers: true, FetchTeam: true}

	testCases := []struct {
		name  string
		from  usecases.State
		flags domain.FeatureFlags
		want  usecases.State
	}{
		{"start always", usecases.StateStart, none, usecases.StateMessageAndThread},
		{"message no flags", usecases.StateMessageAndThread, none, usecases.StateEnd},
		{"message channel", usecases.StateMessageAndThread, channel, usecases.StateChannelInfo},
		{"message channel before users", usecases.StateMessageAndThread, all, usecases.StateChannelInfo},
		{"message users only", usecases.StateMessageAndThread, users, usecases.StateUserInfo},
		{"message team only ends", usecases.StateMessageAndThread, domain.FeatureFlags{FetchTeam: true}, usecases.StateEnd},
		{"channel no users", usecases.StateChannelInfo, channel, usecases.StateEnd},
		{"channel users", usecases.StateChannelInfo, all, usecases.StateUserInfo},
		{"users no team", usecases.StateUserInfo, users, usecases.StateEnd},
		{"users team", usecases.StateUserInfo, usersTeam, usecases.StateTeamInfo},
		{"team always", usecases.StateTeamInfo, none, usecases.StateEnd},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := usecases.NextState(tc.from, tc.flags)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("NextState(%s, %s) = %s, want %s", tc.from, tc.flags, got, tc.want)
			}
		})
	}
}

func TestNextState_Unmatched_ReturnsInvalidTransition(t *testing.T) {
	for _, from := range []usecases.State{usecases.StateEnd, usecases.State(42)} {
		_, err := usecases.NextState(from, domain.FeatureFlags{FetchUsers: true})

		if !errors.Is(err, domain.ErrInvalidStateTransition) {
			t.Errorf("from %s: expected ErrInvalidStateTransition, got %v", from, err)
		}
	}
}

func TestState_String(t *testing.T) {
	if usecases.StateUserInfo.String() != "user_info" {
		t.Errorf("got %v", usecases.StateUserInfo)
	}
	if usecases.State(42).String() != "state(42)" {
		t.Errorf("got %v", usecases.State(42))
	}
}
