// Package domain contains the core business entities and rules.
package domain

import "fmt"

// Message represents one Slack message as returned by conversations.replies.
// UserInfo is only populated after finalization.
type Message struct {
	Type       string     `json:"type,omitempty"`
	User       string     `json:"user,omitempty"`
	UserInfo   *User      `json:"user_info,omitempty"`
	Text       string     `json:"text,omitempty"`
	ThreadTS   string     `json:"thread_ts,omitempty"`
	ReplyCount int        `json:"reply_count,omitempty"`
	TS         string     `json:"ts,omitempty"`
	Reactions  []Reaction `json:"reactions,omitempty"`
	Files      []File     `json:"files,omitempty"`
}

// Reaction is one emoji reaction on a message.
type Reaction struct {
	Name      string   `json:"name"`
	Users     []string `json:"users"`
	UsersInfo []User   `json:"users_info,omitempty"`
	Count     int      `json:"count"`
}

// File is an attachment uploaded to a message.
type File struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	UserTeam           string `json:"user_team"`
	Title              string `json:"title"`
	Mimetype           string `json:"mimetype"`
	Filetype           string `json:"filetype"`
	Size               int64  `json:"size"`
	URLPrivate         string `json:"url_private"`
	URLPrivateDownload string `json:"url_private_download"`
	Permalink          string `json:"permalink"`
	PermalinkPublic    string `json:"permalink_public"`
}

// LinkKey returns the key the file is exposed under in file links.
func (f File) LinkKey() string {
	return f.UserTeam + "-" + f.ID
}

// MessageAndThread pairs the permalinked message with its full thread.
// Message holds the thread entries whose ts equals the permalinked ts.
type MessageAndThread struct {
	Message []Message `json:"message"`
	Thread  []Message `json:"thread"`
}

// NewMessageAndThread selects the permalinked message out of its thread.
// Thread order is kept as returned by Slack.
func NewMessageAndThread(thread []Message, ts string) (MessageAndThread, error) {
	var message []Message
	for _, m := range thread {
		if m.TS == ts {
			message = append(message, m)
		}
	}

	if len(message) == 0 {
		return MessageAndThread{}, fmt.Errorf("%w: ts=%s thread_size=%d", ErrMessageNotFoundInThread, ts, len(thread))
	}

	return MessageAndThread{Message: message, Thread: thread}, nil
}

// ComponentsAggregate is the archival document for one retrieval.
// Optional sections are nil when their feature flag was off.
type ComponentsAggregate struct {
	MessageAndThread MessageAndThread  `json:"message_and_thread"`
	FileName         string            `json:"file_name"`
	Users            map[string]User   `json:"users,omitempty"`
	Channel          *Channel          `json:"channel,omitempty"`
	Teams            map[string]Team   `json:"teams,omitempty"`
	FileLinks        map[string]string `json:"file_links,omitempty"`
}
