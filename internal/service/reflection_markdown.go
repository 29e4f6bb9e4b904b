package service

import (
	"bytes"
	"strings"

	"github.com/energyledger/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ReflectionHTML 是复盘文本渲染为 HTML 后的安全输出。
type ReflectionHTML struct {
	Energized string `json:"energized,omitempty"`
	Drained   string `json:"drained,omitempty"`
	Observed  string `json:"observed,omitempty"`
}

// RenderReflectionHTML 将复盘的自由文本按 Markdown 渲染并消毒。
// 复盘只是个人笔记，允许基本排版但不允许任何危险标签。
func RenderReflectionHTML(reflection *db.DayReflection) ReflectionHTML {
	if reflection == nil {
		return ReflectionHTML{}
	}

	return ReflectionHTML{
		Energized: renderMarkdown(reflection.Energized),
		Drained:   renderMarkdown(reflection.Drained),
		Observed:  renderMarkdown(reflection.Observed),
	}
}

func renderMarkdown(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		// 渲染失败时退回纯文本，复盘内容绝不因格式问题丢失
		return sanitizer.Sanitize(trimmed)
	}

	return sanitizer.Sanitize(buf.String())
}
