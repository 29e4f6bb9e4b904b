package service

import (
	"errors"
	"strings"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/store"
)

const (
	// ThemeLight 亮色主题
	ThemeLight = "light"
	// ThemeDark 暗色主题
	ThemeDark = "dark"
)

// ErrInvalidTheme 在主题取值不是 light/dark 时返回
var ErrInvalidTheme = errors.New("invalid theme")

// ThemeService 读写界面主题偏好，纯装饰性配置。
type ThemeService struct {
	store *store.Store
}

// NewThemeService 构造 ThemeService
func NewThemeService(st *store.Store) *ThemeService {
	return &ThemeService{store: st}
}

// Get 返回当前主题，未设置或数据异常时回退为亮色。
func (s *ThemeService) Get() string {
	var theme string
	if !s.store.Get(db.KeyTheme, &theme) {
		return ThemeLight
	}
	if theme != ThemeLight && theme != ThemeDark {
		return ThemeLight
	}
	return theme
}

// Set 保存主题偏好，仅接受 light/dark。
func (s *ThemeService) Set(theme string) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(theme))
	if normalized != ThemeLight && normalized != ThemeDark {
		return "", ErrInvalidTheme
	}

	s.store.Set(db.KeyTheme, normalized)
	return normalized, nil
}
