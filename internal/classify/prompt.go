// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"text/template"
	"unicode/utf8"
)

// Role names used in chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemPrompt is the fixed analyst instruction sent with every item. It
// defines what counts as valuable and the exact reply format Parse expects.
const SystemPrompt = `# Role
你是一位拥有 10 年经验的 AI 行业资深分析师，擅长从海量信息中精准识别具有商业价值和技术深度的硬核新闻。

# Criteria
- **有价值**：涉及底层模型重大更新、关键技术突破、大厂战略转向、改变行业格局的融资、或重要监管政策。
- **无价值**：产品软文、简单的工具推荐清单、公关快讯、无事实支撑的口水文。

# Output Format
- 若无价值，仅回复：放弃（简述理由）
- 若有价值，严格按此格式：
价值判断：有
深度总结：【核心观点】... ；【行业影响】...
`

const (
	untitled  = "无标题"
	noContent = "无内容"
)

var itemPromptTmpl = template.Must(template.New("item").Parse(
	"请分析以下新闻：\n标题：{{.Title}}\n内容：{{.Content}}"))

// BuildMessages returns the system and user messages for one news item. The
// content is clipped to limit characters; limit <= 0 sends it whole.
func BuildMessages(title, content string, limit int) ([]Message, error) {
	if title == "" {
		title = untitled
	}
	if content == "" {
		content = noContent
	} else if limit > 0 {
		content = Clip(content, limit)
	}

	var buf bytes.Buffer
	if err := itemPromptTmpl.Execute(&buf, struct{ Title, Content string }{title, content}); err != nil {
		return nil, err
	}

	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: buf.String()},
	}, nil
}

// Clip returns the first n characters (runes) of s.
func Clip(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
