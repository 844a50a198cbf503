package v1

import (
	"github.com/iWorld-y/founder_radar/app/insight/pkg/model"
)

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type SearchReq struct {
	Query string `json:"query"`
}

type SearchReply struct {
	RequestID string           `json:"request_id"`
	Query     string           `json:"query"`
	Items     []model.CardItem `json:"items"`
	Warning   string           `json:"warning,omitempty"`
}

type GetDashboardReq struct{}

type DashboardReply struct {
	State *model.DashboardState `json:"state"`
}

type ClearDashboardReq struct{}

type EmptyReply struct{}

type Attachment struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

type ChatReq struct {
	SessionID  string      `json:"session_id"`
	Message    string      `json:"message"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

type ChatReply struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Failed    bool   `json:"failed"`
}

type GetChatReq struct {
	SessionID string `json:"session_id"`
}

type GetChatReply struct {
	SessionID string          `json:"session_id"`
	Messages  []model.Message `json:"messages"`
}

type ResetChatReq struct {
	SessionID string `json:"session_id"`
}

type ArchiveChatReq struct {
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
}

type ArchiveChatReply struct {
	Topic     string `json:"topic"`
	Exchanges int    `json:"exchanges"`
}

type ListTopicsReq struct{}

type ListTopicsReply struct {
	Topics []model.Topic `json:"topics"`
}

type ListTopicMessagesReq struct {
	Topic string `json:"topic"`
}

type ListTopicMessagesReply struct {
	Topic     string           `json:"topic"`
	Exchanges []model.Exchange `json:"exchanges"`
}

type RenameTopicReq struct {
	Topic    string `json:"topic"`
	NewTopic string `json:"new_topic"`
}

type DeleteTopicReq struct {
	Topic string `json:"topic"`
}

type ResumeTopicReq struct {
	Topic string `json:"topic"`
}

type ResumeTopicReply struct {
	SessionID string          `json:"session_id"`
	Topic     string          `json:"topic"`
	Messages  []model.Message `json:"messages"`
}

type ResearchReq struct {
	Q string `json:"q"`
}

type ResearchReply struct {
	Query   string         `json:"query"`
	Sources []model.Source `json:"sources"`
}
