// Package fixtures provides Slack Web API response bodies for tests.
package fixtures

import "fmt"

// Identifiers used across the fixtures.
const (
	ChannelID = "C0123ABCD"
	DMChannel = "D0456EFGH"
	TeamID    = "T0001"
	RootTS    = "1700000000.000100"
	ReplyTS   = "1700000050.000200"
	FileID    = "F0789"
)

// RootPermalink links to the thread root.
func RootPermalink() string {
	return "https://acme.slack.com/archives/" + ChannelID + "/p1700000000000100"
}

// ReplyPermalink links to the reply inside the root's thread.
func ReplyPermalink() string {
	return "https://acme.slack.com/archives/" + ChannelID + "/p1700000050000200?thread_ts=" + RootTS + "&cid=" + ChannelID
}

// GenerateRepliesResponse is a two message thread: a root by U1 with a
// reaction from U1 and U2, and a reply by U2 carrying one file.
func GenerateRepliesResponse() string {
	return `{
  "ok": true,
  "messages": [
    {
      "type": "message",
      "user": "U1",
      "text": "deploy is done",
      "thread_ts": "` + RootTS + `",
      "reply_count": 1,
      "ts": "` + RootTS + `",
      "reactions": [
        {"name": "tada", "users": ["U1", "U2"], "count": 2}
      ]
    },
    {
      "type": "message",
      "user": "U2",
      "text": "logs attached",
      "thread_ts": "` + RootTS + `",
      "ts": "` + ReplyTS + `",
      "files": [
        {
          "id": "` + FileID + `",
          "name": "deploy.log",
          "user_team": "` + TeamID + `",
          "title": "deploy.log",
          "mimetype": "text/plain",
          "filetype": "text",
          "size": 1024,
          "url_private": "https://files.slack.com/files-pri/` + TeamID + `-` + FileID + `/deploy.log",
          "url_private_download": "https://files.slack.com/files-pri/` + TeamID + `-` + FileID + `/download/deploy.log",
          "permalink": "https://acme.slack.com/files/U2/` + FileID + `/deploy.log"
        }
      ]
    }
  ],
  "has_more": false
}`
}

// GenerateSingleMessageResponse is a thread holding only a root by U1 reacted to by U1.
func GenerateSingleMessageResponse() string {
	return `{
  "ok": true,
  "messages": [
    {
      "type": "message",
      "user": "U1",
      "text": "hello",
      "ts": "` + RootTS + `",
      "reactions": [{"name": "wave", "users": ["U1"], "count": 1}]
    }
  ]
}`
}

// GenerateUserResponse is a users.info body. An empty teamID omits team_id.
func GenerateUserResponse(id, teamID string) string {
	team := ""
	if teamID != "" {
		team = fmt.Sprintf(`"team_id": %q,`, teamID)
	}
	return fmt.Sprintf(`{"ok": true, "user": {"id": %q, %s "name": "user-%s", "real_name": "User %s"}}`, id, team, id, id)
}

// GenerateTeamResponse is a team.info body.
func GenerateTeamResponse(id string) string {
	return fmt.Sprintf(`{"ok": true, "team": {"id": %q, "name": "Acme %s", "domain": "acme", "email_domain": "acme.test"}}`, id, id)
}

// GenerateChannelResponse is a conversations.info body. dmUser sets the
// counterpart of a direct message channel.
func GenerateChannelResponse(id, dmUser string) string {
	if dmUser != "" {
		return fmt.Sprintf(`{"ok": true, "channel": {"id": %q, "is_im": true, "user": %q, "created": 1690000000}}`, id, dmUser)
	}
	return fmt.Sprintf(`{"ok": true, "channel": {"id": %q, "name": "deploys", "is_channel": true, "created": 1690000000,
  "topic": {"value": "release talk", "creator": "U1", "last_set": 1690000001}}}`, id)
}

// GenerateNotOkResponse is the envelope Slack returns for a rejected call.
func GenerateNotOkResponse(code string) string {
	return fmt.Sprintf(`{"ok": false, "error": %q}`, code)
}

// GenerateAuthTestResponse is an auth.test body.
func GenerateAuthTestResponse() string {
	return `{"ok": true, "url": "https://acme.slack.com/", "team": "Acme", "user": "jane", "team_id": "` + TeamID + `", "user_id": "U1"}`
}
