package service

import (
	"math"

	"github.com/energyledger/internal/db"
)

// 能量引擎：由当天记录与活动目录计算带符号的能量值。
// 所有函数均为纯函数，不做四舍五入，展示层如需可自行保留两位小数。
//
// 意图加权：刻意完成的获得型活动每次多记 5%，
// 刻意为之的消耗型活动每次少扣 5%（相比无意识/强迫性的发生）。
const (
	gainIntentionalFactor  = 1.05
	drainIntentionalFactor = 0.95
)

// ResolveMagnitude 解析某活动在当天的单次能量幅值。
// 优先级：当天 override > 活动默认幅值 > 0，结果恒为非负。
func ResolveMagnitude(day *db.DayData, activityID string, activity *db.ActivityDefinition) float64 {
	if day != nil {
		if override, ok := day.ActivityEnergyOverrides[activityID]; ok {
			return math.Abs(override)
		}
	}
	if activity != nil && activity.EnergyMagnitude != nil {
		return math.Abs(*activity.EnergyMagnitude)
	}
	return 0
}

// ActivityEnergy 计算某活动当天的带符号总能量。
// 意图列表存在且长度与次数完全一致时才应用意图加权，
// 长度不一致时回退为 count × magnitude（对错配数据宽容降级）。
func ActivityEnergy(day *db.DayData, activityID string, activity *db.ActivityDefinition) float64 {
	if day == nil {
		return 0
	}

	count := day.ActivityCounts[activityID]
	if count <= 0 {
		return 0
	}

	magnitude := ResolveMagnitude(day, activityID, activity)
	if magnitude == 0 {
		return 0
	}

	direction := db.DirectionGain
	if activity != nil {
		direction = db.NormalizeDirection(activity.Direction)
	}

	total := float64(count) * magnitude

	tags := day.ActivityIntentionality[activityID]
	if len(tags) == count {
		intentional := 0
		for _, tag := range tags {
			if tag == db.Intentional {
				intentional++
			}
		}

		factor := gainIntentionalFactor
		if direction == db.DirectionDrain {
			factor = drainIntentionalFactor
		}

		total = float64(intentional)*magnitude*factor + float64(count-intentional)*magnitude
	}

	if direction == db.DirectionDrain {
		return -total
	}
	return total
}

// DayEnergy 计算当天的净能量（获得为正、消耗为负）。
// 遍历活动目录而非计数表，已删除活动的残留计数不参与计算，
// 从而保证 DayEnergy == EnergyGained - EnergyDrained 恒成立。
func DayEnergy(day *db.DayData, activities []db.ActivityDefinition) float64 {
	if day == nil {
		return 0
	}

	total := 0.0
	for i := range activities {
		total += ActivityEnergy(day, activities[i].ID, &activities[i])
	}
	return total
}

// EnergyGained 返回获得型活动带来的能量总和。
func EnergyGained(day *db.DayData, activities []db.ActivityDefinition) float64 {
	if day == nil {
		return 0
	}

	total := 0.0
	for i := range activities {
		if db.NormalizeDirection(activities[i].Direction) != db.DirectionGain {
			continue
		}
		energy := ActivityEnergy(day, activities[i].ID, &activities[i])
		total += math.Max(0, energy)
	}
	return total
}

// EnergyDrained 返回消耗型活动扣减的能量总和，以正数表示。
func EnergyDrained(day *db.DayData, activities []db.ActivityDefinition) float64 {
	if day == nil {
		return 0
	}

	total := 0.0
	for i := range activities {
		if db.NormalizeDirection(activities[i].Direction) != db.DirectionDrain {
			continue
		}
		energy := ActivityEnergy(day, activities[i].ID, &activities[i])
		total += math.Max(0, -energy)
	}
	return total
}

// IsSetupComplete 判断早晨设置是否完成：
// 目录非空，且每个活动都有可解析的幅值（当天 override 或自身默认值）。
// 空目录始终视为未完成。
func IsSetupComplete(day *db.DayData, activities []db.ActivityDefinition) bool {
	if len(activities) == 0 {
		return false
	}

	for i := range activities {
		activity := &activities[i]
		if day != nil {
			if _, ok := day.ActivityEnergyOverrides[activity.ID]; ok {
				continue
			}
		}
		if activity.EnergyMagnitude != nil {
			continue
		}
		if activity.LegacyPoints != nil && activity.LegacyPoints.Valid {
			continue
		}
		return false
	}

	return true
}
