package service

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/energyledger/internal/db"
)

const (
	dateFormat = "2006-01-02"

	// 聚合窗口：今天及其前 89 个日历日
	aggregationWindowDays = 90
	// 周/月桶最多各返回 12 个
	maxSummaryBuckets = 12
	// 模式观察只看最近 30 个有记录的日子
	patternWindowDays = 30
)

// WeekEnergy 表示一个周桶，Week 为该周周日的日期（YYYY-MM-DD）。
type WeekEnergy struct {
	Week   string  `json:"week"`
	Energy float64 `json:"energy"`
}

// MonthEnergy 表示一个月桶，Month 为 YYYY-MM。
type MonthEnergy struct {
	Month  string  `json:"month"`
	Energy float64 `json:"energy"`
}

// SummaryService 将滚动 90 天窗口内的每日净能量汇总为周/月桶，
// 并从同一窗口推导描述性的模式观察语句。
// now 可注入，测试时固定时钟以获得确定性输出。
type SummaryService struct {
	days       *DayService
	activities *ActivityService
	now        func() time.Time
}

// NewSummaryService 构造 SummaryService
func NewSummaryService(days *DayService, activities *ActivityService) *SummaryService {
	return &SummaryService{
		days:       days,
		activities: activities,
		now:        time.Now,
	}
}

// SetClock 替换时间源，主要面向测试场景。
func (s *SummaryService) SetClock(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// includedDays 返回窗口内用户实际参与过的日子，按由近及远排列。
// 只创建过默认空记录的日子不参与聚合：参与的标准是记过至少一次活动、
// 显式结束过当天，或设置过当天的幅值 override。
func (s *SummaryService) includedDays() []*db.DayData {
	today := s.now().In(time.Local)

	included := make([]*db.DayData, 0, aggregationWindowDays)
	for i := 0; i < aggregationWindowDays; i++ {
		date := today.AddDate(0, 0, -i).Format(dateFormat)
		day := s.days.Load(date)

		if day.HasAnyActivity() || day.Completed || len(day.ActivityEnergyOverrides) > 0 {
			included = append(included, day)
		}
	}

	return included
}

// Weekly 汇总窗口内每周的净能量，周以周日开始。
// 返回结果按周键降序（最近在前），至多 12 个桶。
func (s *SummaryService) Weekly() []WeekEnergy {
	days := s.includedDays()
	activities := s.activities.Load()

	buckets := map[string]float64{}
	for _, day := range days {
		date, err := time.ParseInLocation(dateFormat, day.Date, time.Local)
		if err != nil {
			continue
		}

		weekStart := date.AddDate(0, 0, -int(date.Weekday()))
		buckets[weekStart.Format(dateFormat)] += DayEnergy(day, activities)
	}

	weeks := make([]WeekEnergy, 0, len(buckets))
	for week, energy := range buckets {
		weeks = append(weeks, WeekEnergy{Week: week, Energy: energy})
	}

	slices.SortFunc(weeks, func(a, b WeekEnergy) int {
		return cmp.Compare(b.Week, a.Week)
	})

	if len(weeks) > maxSummaryBuckets {
		weeks = weeks[:maxSummaryBuckets]
	}
	return weeks
}

// Monthly 汇总窗口内每个日历月的净能量。
// 返回结果按月键降序（最近在前），至多 12 个桶。
func (s *SummaryService) Monthly() []MonthEnergy {
	days := s.includedDays()
	activities := s.activities.Load()

	buckets := map[string]float64{}
	for _, day := range days {
		if len(day.Date) < 7 {
			continue
		}
		buckets[day.Date[:7]] += DayEnergy(day, activities)
	}

	months := make([]MonthEnergy, 0, len(buckets))
	for month, energy := range buckets {
		months = append(months, MonthEnergy{Month: month, Energy: energy})
	}

	slices.SortFunc(months, func(a, b MonthEnergy) int {
		return cmp.Compare(b.Month, a.Month)
	})

	if len(months) > maxSummaryBuckets {
		months = months[:maxSummaryBuckets]
	}
	return months
}

// Patterns 生成描述性的模式观察语句。
// 语句只是给用户看的观察，不参与任何计算决策；
// 相同的记录输入保证产生相同的输出顺序。
func (s *SummaryService) Patterns() []string {
	days := s.includedDays()
	activities := s.activities.Load()

	statements := make([]string, 0, 4)

	if statement, ok := s.weekendAutomaticPattern(days); ok {
		statements = append(statements, statement)
	}

	statements = append(statements, s.consistencyPatterns(days, activities)...)

	return statements
}

// weekendAutomaticPattern 比较最近 30 个参与日中
// 工作日与周末的 automatic 记录次数，周末高出两成以上时给出观察。
func (s *SummaryService) weekendAutomaticPattern(days []*db.DayData) (string, bool) {
	recent := days
	if len(recent) > patternWindowDays {
		recent = recent[:patternWindowDays]
	}

	weekdayAuto := 0
	weekendAuto := 0
	for _, day := range recent {
		date, err := time.ParseInLocation(dateFormat, day.Date, time.Local)
		if err != nil {
			continue
		}

		automatic := 0
		for _, tags := range day.ActivityIntentionality {
			for _, tag := range tags {
				if tag == db.Automatic {
					automatic++
				}
			}
		}

		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			weekendAuto += automatic
		} else {
			weekdayAuto += automatic
		}
	}

	if float64(weekendAuto) > float64(weekdayAuto)*1.2 && weekendAuto > 0 {
		return "Your automatic activity is noticeably higher on weekends than on weekdays.", true
	}
	return "", false
}

// consistencyPatterns 找出窗口内记录次数前三的获得型活动中，
// 在至少一半参与日里出现过的活动并逐个给出观察。
func (s *SummaryService) consistencyPatterns(days []*db.DayData, activities []db.ActivityDefinition) []string {
	if len(days) == 0 {
		return nil
	}

	type activityUsage struct {
		id         string
		totalCount int
		daysLogged int
	}

	usageMap := map[string]*activityUsage{}
	for _, day := range days {
		for activityID, count := range day.ActivityCounts {
			if count <= 0 {
				continue
			}
			usage, ok := usageMap[activityID]
			if !ok {
				usage = &activityUsage{id: activityID}
				usageMap[activityID] = usage
			}
			usage.totalCount += count
			usage.daysLogged++
		}
	}

	ranked := make([]*activityUsage, 0, len(usageMap))
	for _, usage := range usageMap {
		ranked = append(ranked, usage)
	}
	slices.SortFunc(ranked, func(a, b *activityUsage) int {
		if diff := cmp.Compare(b.totalCount, a.totalCount); diff != 0 {
			return diff
		}
		return cmp.Compare(a.id, b.id)
	})

	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	statements := make([]string, 0, len(ranked))
	for _, usage := range ranked {
		activity := findActivity(activities, usage.id)
		if activity == nil || db.NormalizeDirection(activity.Direction) != db.DirectionGain {
			continue
		}
		if usage.daysLogged*2 < len(days) {
			continue
		}
		statements = append(statements, fmt.Sprintf("%s keeps showing up: you logged it on at least half of your active days.", activity.Label))
	}

	return statements
}

func findActivity(activities []db.ActivityDefinition, id string) *db.ActivityDefinition {
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i]
		}
	}
	return nil
}
