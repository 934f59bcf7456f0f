package domain

// User is a workspace member as returned by users.info.
type User struct {
	ID       string `json:"id"`
	TeamID   string `json:"team_id,omitempty"`
	TeamInfo *Team  `json:"team_info,omitempty"`
	Name     string `json:"name,omitempty"`
	RealName string `json:"real_name,omitempty"`
}

// Team is a workspace as returned by team.info.
type Team struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Domain         string `json:"domain,omitempty"`
	EmailDomain    string `json:"email_domain,omitempty"`
	EnterpriseID   string `json:"enterprise_id,omitempty"`
	EnterpriseName string `json:"enterprise_name,omitempty"`
}

// Channel is conversation metadata as returned by conversations.info.
// User is only set for direct messages and names the counterpart.
type Channel struct {
	ID                 string          `json:"id,omitempty"`
	Name               string          `json:"name,omitempty"`
	NameNormalized     string          `json:"name_normalized,omitempty"`
	IsChannel          bool            `json:"is_channel,omitempty"`
	IsGroup            bool            `json:"is_group,omitempty"`
	IsIM               bool            `json:"is_im,omitempty"`
	IsMPIM             bool            `json:"is_mpim,omitempty"`
	IsPrivate          bool            `json:"is_private,omitempty"`
	IsArchived         bool            `json:"is_archived,omitempty"`
	IsGeneral          bool            `json:"is_general,omitempty"`
	IsShared           bool            `json:"is_shared,omitempty"`
	IsOrgShared        bool            `json:"is_org_shared,omitempty"`
	IsMember           bool            `json:"is_member,omitempty"`
	IsReadOnly         bool            `json:"is_read_only,omitempty"`
	IsOpen             bool            `json:"is_open,omitempty"`
	Created            int64           `json:"created,omitempty"`
	Creator            string          `json:"creator,omitempty"`
	LastRead           string          `json:"last_read,omitempty"`
	Topic              *ChannelAuxData `json:"topic,omitempty"`
	Purpose            *ChannelAuxData `json:"purpose,omitempty"`
	PreviousNames      []string        `json:"previous_names,omitempty"`
	Locale             string          `json:"locale,omitempty"`
	Latest             *Message        `json:"latest,omitempty"`
	UnreadCount        int64           `json:"unread_count,omitempty"`
	UnreadCountDisplay int64           `json:"unread_count_display,omitempty"`
	Priority           float64         `json:"priority,omitempty"`
	User               string          `json:"user,omitempty"`
	UserInfo           *User           `json:"user_info,omitempty"`
}

// ChannelAuxData is the shape shared by a channel's topic and purpose.
type ChannelAuxData struct {
	Value   string `json:"value"`
	Creator string `json:"creator"`
	LastSet int64  `json:"last_set"`
}
