package service

import (
	"strings"
	"time"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/store"
	"github.com/google/uuid"
)

// ExportSnapshot 是全部本地数据的一次性导出。
// 面向个人备份场景，SnapshotID 仅用于区分两次导出。
type ExportSnapshot struct {
	SnapshotID  string                  `json:"snapshot_id"`
	GeneratedAt string                  `json:"generated_at"`
	Theme       string                  `json:"theme"`
	Activities  []db.ActivityDefinition `json:"activities"`
	Days        []*db.DayData           `json:"days"`
}

// ExportService 汇总活动目录、全部每日记录与主题为一份快照。
type ExportService struct {
	store      *store.Store
	days       *DayService
	activities *ActivityService
	theme      *ThemeService
	now        func() time.Time
}

// NewExportService 构造 ExportService
func NewExportService(st *store.Store, days *DayService, activities *ActivityService, theme *ThemeService) *ExportService {
	return &ExportService{
		store:      st,
		days:       days,
		activities: activities,
		theme:      theme,
		now:        time.Now,
	}
}

// SetClock 替换时间源，主要面向测试场景。
func (s *ExportService) SetClock(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Snapshot 生成当前全部数据的导出快照。
// 每日记录取自存储中全部 day: 键，经由仓库读取以应用迁移，
// 导出的永远是当前模型而非历史形态。
func (s *ExportService) Snapshot() ExportSnapshot {
	keys := s.store.Keys(db.DayKeyPrefix)

	days := make([]*db.DayData, 0, len(keys))
	for _, key := range keys {
		date := strings.TrimPrefix(key, db.DayKeyPrefix)
		days = append(days, s.days.Load(date))
	}

	return ExportSnapshot{
		SnapshotID:  uuid.New().String(),
		GeneratedAt: s.now().Format(time.RFC3339),
		Theme:       s.theme.Get(),
		Activities:  s.activities.Load(),
		Days:        days,
	}
}
