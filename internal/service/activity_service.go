package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/store"
)

var (
	// ErrActivityNotFound 在指定活动不存在时返回
	ErrActivityNotFound = errors.New("activity not found")
	// ErrActivityLabelRequired 在活动名称为空时返回
	ErrActivityLabelRequired = errors.New("activity label is required")
)

// ActivityService 负责活动目录的读写与归一化。
// 活动列表整体作为一个 JSON 文档存储在 user:activities 键下，
// 读取时将历史形态（good/bad 方向、带符号 points）归一化为当前模型。
type ActivityService struct {
	store *store.Store
}

// ActivityInput 定义创建/更新活动时可配置字段
type ActivityInput struct {
	Label           string
	Direction       string
	PairID          string
	EnergyMagnitude *float64
	Unit            string
	Intensity       string
}

// NewActivityService 构造 ActivityService
func NewActivityService(st *store.Store) *ActivityService {
	return &ActivityService{store: st}
}

// defaultActivities 为新用户提供的初始活动配对。
func defaultActivities() []db.ActivityDefinition {
	return []db.ActivityDefinition{
		{ID: "meditation", Label: "Meditation", Direction: db.DirectionGain, PairID: "scrolling"},
		{ID: "walking", Label: "Walking", Direction: db.DirectionGain, PairID: "sitting-idle"},
		{ID: "sitting-idle", Label: "Sitting Idle", Direction: db.DirectionDrain, PairID: "walking"},
		{ID: "workout", Label: "Workout", Direction: db.DirectionGain},
		{ID: "reading", Label: "Reading", Direction: db.DirectionGain, PairID: "scrolling"},
		{ID: "scrolling", Label: "Scrolling", Direction: db.DirectionDrain, PairID: "reading"},
	}
}

// Load 返回完整活动目录，首次使用时返回默认配对。
// 读取时执行归一化，只有确实发生变化才回写存储，避免无谓写入。
func (s *ActivityService) Load() []db.ActivityDefinition {
	var activities []db.ActivityDefinition
	if !s.store.Get(db.KeyActivities, &activities) {
		return defaultActivities()
	}

	changed := false
	for i := range activities {
		if normalizeActivity(&activities[i]) {
			changed = true
		}
	}

	if changed {
		s.Save(activities)
	}

	return activities
}

// Save 将活动目录整体写入存储。
func (s *ActivityService) Save(activities []db.ActivityDefinition) {
	s.store.Set(db.KeyActivities, activities)
}

// Add 新建活动并持久化，返回带去重后 ID 的定义。
// ID 由名称生成 slug，冲突时依次追加 -1、-2 后缀，绝不覆盖已有活动。
func (s *ActivityService) Add(input ActivityInput) (*db.ActivityDefinition, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrActivityLabelRequired
	}

	activities := s.Load()

	base := slugify(label)
	uniqueID := base
	for counter := 1; hasActivityID(activities, uniqueID); counter++ {
		uniqueID = fmt.Sprintf("%s-%d", base, counter)
	}

	activity := db.ActivityDefinition{
		ID:        uniqueID,
		Label:     label,
		Direction: db.NormalizeDirection(input.Direction),
		PairID:    strings.TrimSpace(input.PairID),
		Unit:      strings.TrimSpace(input.Unit),
		Intensity: strings.TrimSpace(input.Intensity),
	}
	if input.EnergyMagnitude != nil {
		magnitude := math.Abs(*input.EnergyMagnitude)
		activity.EnergyMagnitude = &magnitude
	}

	activities = append(activities, activity)
	s.Save(activities)

	return &activity, nil
}

// Update 按 ID 更新活动的可配置字段。
func (s *ActivityService) Update(id string, input ActivityInput) (*db.ActivityDefinition, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrActivityLabelRequired
	}

	activities := s.Load()

	for i := range activities {
		if activities[i].ID != id {
			continue
		}

		activities[i].Label = label
		activities[i].Direction = db.NormalizeDirection(input.Direction)
		activities[i].PairID = strings.TrimSpace(input.PairID)
		activities[i].Unit = strings.TrimSpace(input.Unit)
		activities[i].Intensity = strings.TrimSpace(input.Intensity)
		if input.EnergyMagnitude != nil {
			magnitude := math.Abs(*input.EnergyMagnitude)
			activities[i].EnergyMagnitude = &magnitude
		} else {
			activities[i].EnergyMagnitude = nil
		}

		s.Save(activities)
		updated := activities[i]
		return &updated, nil
	}

	return nil, ErrActivityNotFound
}

// Remove 按 ID 删除活动，活动不存在时静默成功。
func (s *ActivityService) Remove(id string) {
	activities := s.Load()

	filtered := make([]db.ActivityDefinition, 0, len(activities))
	for _, activity := range activities {
		if activity.ID != id {
			filtered = append(filtered, activity)
		}
	}

	s.Save(filtered)
}

// Find 按 ID 查找活动。
func (s *ActivityService) Find(id string) (*db.ActivityDefinition, error) {
	activities := s.Load()
	for i := range activities {
		if activities[i].ID == id {
			found := activities[i]
			return &found, nil
		}
	}
	return nil, ErrActivityNotFound
}

// normalizeActivity 就地归一化单个活动，返回是否发生了变化：
// good/bad 映射为 gain/drain；历史带符号 points 取绝对值搬入
// energyMagnitude（已有 energyMagnitude 时不覆盖）；幅值强制非负。
func normalizeActivity(activity *db.ActivityDefinition) bool {
	changed := false

	if normalized := db.NormalizeDirection(activity.Direction); normalized != activity.Direction {
		activity.Direction = normalized
		changed = true
	}

	if activity.LegacyPoints != nil {
		if activity.EnergyMagnitude == nil && activity.LegacyPoints.Valid {
			magnitude := math.Abs(activity.LegacyPoints.Value)
			activity.EnergyMagnitude = &magnitude
		}
		activity.LegacyPoints = nil
		changed = true
	}

	if activity.EnergyMagnitude != nil && *activity.EnergyMagnitude < 0 {
		magnitude := math.Abs(*activity.EnergyMagnitude)
		activity.EnergyMagnitude = &magnitude
		changed = true
	}

	return changed
}

func hasActivityID(activities []db.ActivityDefinition, id string) bool {
	for _, activity := range activities {
		if activity.ID == id {
			return true
		}
	}
	return false
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify 由活动名称生成 URL 友好的 ID。
func slugify(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	if slug == "" {
		return "activity"
	}
	return slug
}
