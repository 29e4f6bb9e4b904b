package service

import (
	"errors"
	"math"
	"strings"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/store"
)

var (
	// ErrInvalidMagnitude 在幅值非法（NaN/无穷）时返回
	ErrInvalidMagnitude = errors.New("invalid energy magnitude")
	// ErrInvalidIntentionality 在意图标记不是 intentional/automatic 时返回
	ErrInvalidIntentionality = errors.New("invalid intentionality tag")
)

// DayService 负责每日记录的读写与全部状态变更。
// 记录按日期整体存储在 day:<YYYY-MM-DD> 键下，读取时应用迁移；
// 每次变更都是同步的读-改-写，符合单用户无并发的使用模型。
type DayService struct {
	store *store.Store
}

// NewDayService 构造 DayService
func NewDayService(st *store.Store) *DayService {
	return &DayService{store: st}
}

// Load 返回指定日期的记录，不存在时返回空白记录（不落盘）。
// 历史形态在此处统一迁移，引擎层只会看到当前模型。
func (s *DayService) Load(date string) *db.DayData {
	var day db.DayData
	if !s.store.Get(db.DayKey(date), &day) {
		return db.NewDay(date)
	}

	day.Date = date
	if day.ActivityCounts == nil {
		day.ActivityCounts = map[string]int{}
	}

	return MigrateDay(&day)
}

// Save 将记录写入存储。
func (s *DayService) Save(day *db.DayData) {
	if day == nil || strings.TrimSpace(day.Date) == "" {
		return
	}
	s.store.Set(db.DayKey(day.Date), day)
}

// Log 记录一次活动：次数加一并按顺序追加意图标记。
// tag 为空时沿用该活动最近一次的标记，首笔记录默认 automatic。
func (s *DayService) Log(date, activityID, tag string) (*db.DayData, error) {
	resolved, err := resolveIntentionality(tag)
	if err != nil {
		return nil, err
	}

	day := s.Load(date)

	tags := day.ActivityIntentionality[activityID]
	if resolved == "" {
		resolved = db.Automatic
		if len(tags) > 0 {
			resolved = tags[len(tags)-1]
		}
	}

	day.ActivityCounts[activityID]++
	if day.ActivityIntentionality == nil {
		day.ActivityIntentionality = map[string][]string{}
	}
	day.ActivityIntentionality[activityID] = append(tags, resolved)

	s.Save(day)
	return day, nil
}

// Unlog 撤销一次活动：次数减一（不小于零）并弹出最后一个意图标记。
func (s *DayService) Unlog(date, activityID string) *db.DayData {
	day := s.Load(date)

	if day.ActivityCounts[activityID] > 0 {
		day.ActivityCounts[activityID]--
	}

	if tags := day.ActivityIntentionality[activityID]; len(tags) > 0 {
		remaining := tags[:len(tags)-1]
		if len(remaining) == 0 {
			delete(day.ActivityIntentionality, activityID)
		} else {
			day.ActivityIntentionality[activityID] = remaining
		}
		if len(day.ActivityIntentionality) == 0 {
			day.ActivityIntentionality = nil
		}
	}

	s.Save(day)
	return day
}

// SetIntention 设置当天的意图文本，空串表示清除。
func (s *DayService) SetIntention(date, intention string) *db.DayData {
	day := s.Load(date)
	day.Intention = strings.TrimSpace(intention)
	s.Save(day)
	return day
}

// SetOverride 设置某活动当天的能量幅值 override。
// value 为 nil 表示清除；数值一律取绝对值，NaN/无穷在入口处拒绝。
func (s *DayService) SetOverride(date, activityID string, value *float64) (*db.DayData, error) {
	if value != nil && (math.IsNaN(*value) || math.IsInf(*value, 0)) {
		return nil, ErrInvalidMagnitude
	}

	day := s.Load(date)

	if value == nil {
		delete(day.ActivityEnergyOverrides, activityID)
	} else {
		if day.ActivityEnergyOverrides == nil {
			day.ActivityEnergyOverrides = map[string]float64{}
		}
		day.ActivityEnergyOverrides[activityID] = math.Abs(*value)
	}
	stripEmptyOverrides(day)

	s.Save(day)
	return day, nil
}

// SetUnit 设置某活动当天的单位标签，空串表示清除。
func (s *DayService) SetUnit(date, activityID, unit string) *db.DayData {
	day := s.Load(date)

	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		delete(day.ActivityUnits, activityID)
		if len(day.ActivityUnits) == 0 {
			day.ActivityUnits = nil
		}
	} else {
		if day.ActivityUnits == nil {
			day.ActivityUnits = map[string]string{}
		}
		day.ActivityUnits[activityID] = trimmed
	}

	s.Save(day)
	return day
}

// SetReflection 写入当天的复盘文本，全部为空时清除整个复盘块。
func (s *DayService) SetReflection(date string, reflection db.DayReflection) *db.DayData {
	day := s.Load(date)

	if (reflection == db.DayReflection{}) {
		day.Reflection = nil
	} else {
		day.Reflection = &reflection
	}

	s.Save(day)
	return day
}

// Close 结束一天，completed 只会由此显式置位。
func (s *DayService) Close(date string) *db.DayData {
	day := s.Load(date)
	day.Completed = true
	s.Save(day)
	return day
}

// Reset 将指定日期重置为默认空白记录。
func (s *DayService) Reset(date string) *db.DayData {
	day := db.NewDay(date)
	s.Save(day)
	return day
}

func resolveIntentionality(tag string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(tag)) {
	case "":
		return "", nil
	case db.Intentional:
		return db.Intentional, nil
	case db.Automatic:
		return db.Automatic, nil
	default:
		return "", ErrInvalidIntentionality
	}
}
