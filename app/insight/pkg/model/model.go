package model

import "time"

// Role 对话消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 单条对话消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ParsedInsight 从模型原始输出中提取的三类条目，保持原始顺序
type ParsedInsight struct {
	Pains      []string `json:"pains"`
	Strategies []string `json:"strategies"`
	Triggers   []string `json:"triggers"`
}

// PainPoint 痛点（对应 topResearchFinds 卡片）
type PainPoint struct {
	ID        int    `json:"id"`
	Source    string `json:"source"`
	Text      string `json:"text"`
	Frequency int    `json:"frequency"`
}

// Challenge 触发因素（对应 challengesFaced 卡片）
type Challenge struct {
	ID       int     `json:"id"`
	Type     string  `json:"type"`
	Text     string  `json:"text"`
	Strength float64 `json:"strength"`
}

// StrategicInsight 策略建议（对应 productDevelopmentInsights 卡片）
type StrategicInsight struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Insight 附加了展示字段的解析结果
type Insight struct {
	Pains      []PainPoint        `json:"pains"`
	Triggers   []Challenge        `json:"triggers"`
	Strategies []StrategicInsight `json:"strategies"`
}

// CardType 仪表盘卡片类型
type CardType string

const (
	CardTopResearchFinds           CardType = "topResearchFinds"
	CardChallengesFaced            CardType = "challengesFaced"
	CardProductDevelopmentInsights CardType = "productDevelopmentInsights"
	CardDeepResearch               CardType = "deepResearch"
	CardChat                       CardType = "chat"
)

// CardItem 仪表盘卡片描述
type CardItem struct {
	ID     int      `json:"id"`
	Type   CardType `json:"type"`
	Height string   `json:"height"`
	Width  string   `json:"width,omitempty"`
	Data   any      `json:"data"`
}

// DashboardState 某个用户的仪表盘状态
type DashboardState struct {
	Version         int        `json:"version"`
	IsSearching     bool       `json:"is_searching"`
	SearchCompleted bool       `json:"search_completed"`
	Query           string     `json:"query,omitempty"`
	Items           []CardItem `json:"items"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Source 深度研究引用来源
type Source struct {
	Title   string  `json:"title"`
	Link    string  `json:"link"`
	PubDate string  `json:"pub_date,omitempty"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Exchange 归档后的一轮问答
type Exchange struct {
	ID        int       `json:"id"`
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	CreatedAt time.Time `json:"created_at"`
}

// Topic 聊天归档主题
type Topic struct {
	ID        int       `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// StateVersion 当前仪表盘状态的持久化版本
const StateVersion = 1

// NewDashboardState 返回一个空的仪表盘状态
func NewDashboardState() *DashboardState {
	return &DashboardState{
		Version: StateVersion,
		Items:   []CardItem{},
	}
}
